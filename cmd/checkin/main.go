package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"daily-checkin/internal/stats"
	"daily-checkin/pkg/client"
)

var (
	serverURL string
	timeout   time.Duration
)

func main() {
	defaultServer := os.Getenv("CHECKIN_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080/api"
	}

	rootCmd := &cobra.Command{
		Use:           "checkin",
		Short:         "每日打卡命令行客户端",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "打卡服务地址（含 API 前缀）")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "单次命令超时")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(calendarCmd())

	if err := rootCmd.Execute(); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintln(os.Stderr, apiErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newTracker() *client.Tracker {
	return client.NewTracker(client.New(serverURL))
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出全部打卡记录",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			snap, err := newTracker().Refresh(ctx)
			if err != nil {
				return err
			}
			if len(snap.Records) == 0 {
				fmt.Println("暂无打卡记录")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\t日期\t时间\t备注")
			for _, r := range snap.Records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Date, r.Time, r.Note)
			}
			return w.Flush()
		},
	}
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [note]",
		Short: "今日打卡（备注可省略）",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			snap, err := newTracker().Submit(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("打卡成功！已连续打卡 %d 天\n", snap.Stats.Streak)
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "删除一条打卡记录",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			snap, err := newTracker().Remove(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("记录已删除，剩余 %d 条\n", len(snap.Records))
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "查看打卡统计",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			snap, err := newTracker().Refresh(ctx)
			if err != nil {
				return err
			}
			s := snap.Stats
			todayStatus := "未打卡"
			if s.TodayCheckedIn {
				todayStatus = "已打卡"
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "连续打卡\t%d 天\n", s.Streak)
			fmt.Fprintf(w, "本月打卡\t%d 天\n", s.MonthlyCount)
			fmt.Fprintf(w, "总打卡次数\t%d\n", s.Total)
			fmt.Fprintf(w, "今日状态\t%s\n", todayStatus)
			fmt.Fprintf(w, "本月打卡率\t%d%% (%s)\n", s.MonthlyRate, s.RateStatus)
			return w.Flush()
		},
	}
}

func calendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "查看某月打卡日历",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			t := newTracker()
			snap, err := t.Refresh(ctx)
			if err != nil {
				return err
			}

			month := stats.MonthOf(snap.Stats.Today)
			if len(args) == 1 {
				month, err = stats.ParseMonth(args[0])
				if err != nil {
					return err
				}
			}

			fmt.Println(month.String())
			for _, day := range t.Calendar(month) {
				mark := "  "
				switch day.Status {
				case stats.DayStatusChecked:
					mark = "✔ "
				case stats.DayStatusPending:
					mark = "… "
				}
				fmt.Printf("%s %s %s\n", mark, day.Date, day.Note)
			}
			return nil
		},
	}
}
