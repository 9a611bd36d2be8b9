package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"meanrevert/cmd"
	"meanrevert/internal/logger"
	"meanrevert/internal/report"
	"meanrevert/internal/repository"
	"meanrevert/internal/scheduler"
	"meanrevert/internal/service"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "meanrevert",
		Short:         "screen companies for mean reversion and backtest the resulting portfolio",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newScreenCmd(), newCompareCmd(), newWatchCmd())
	return root
}

func loadDependencies(c *cobra.Command) (*cmd.Dependencies, context.Context, error) {
	deps, err := cmd.InitializeDependencies()
	if err != nil {
		return nil, nil, err
	}
	ctx := logger.WithContext(c.Context(), logger.New())
	return deps, ctx, nil
}

func writeCSV(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}

func readCompanyList(path string) ([]repository.CompanyListing, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open company list: %w", err)
	}
	defer f.Close()
	return repository.ParseCompanyList(f)
}

func parseThreshold(s string) (float64, error) {
	threshold, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid threshold %q: %w", s, err)
	}
	return threshold, nil
}

func newScreenCmd() *cobra.Command {
	var csvPath string
	c := &cobra.Command{
		Use:   "screen FILE START END THRESHOLD",
		Short: "classify companies as mean reverting and allocate by z-score",
		Args:  cobra.ExactArgs(4),
		RunE: func(c *cobra.Command, args []string) error {
			companies, total, err := readCompanyList(args[0])
			if err != nil {
				return err
			}
			start, err := time.Parse(time.DateOnly, args[1])
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
			end, err := time.Parse(time.DateOnly, args[2])
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}
			threshold, err := parseThreshold(args[3])
			if err != nil {
				return err
			}

			deps, ctx, err := loadDependencies(c)
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(deps)

			result, err := deps.MeanReversionService.Screen(ctx, service.ScreenInput{
				Companies: companies,
				Start:     start,
				End:       end,
				Threshold: threshold,
			})
			if err != nil {
				return err
			}
			// report against the raw line count, duplicates included
			result.Total = total

			report.PrintScreen(c.OutOrStdout(), result)
			if csvPath != "" {
				return writeCSV(csvPath, func(w io.Writer) error {
					return report.WriteScreenCSV(w, result)
				})
			}
			return nil
		},
	}
	c.Flags().StringVar(&csvPath, "csv", "", "also write the screen to this csv file")
	return c
}

func newCompareCmd() *cobra.Command {
	var csvPath string
	c := &cobra.Command{
		Use:   "compare FILE START END CAPITAL",
		Short: "compare a portfolio against the S&P 500 and NASDAQ",
		Args:  cobra.ExactArgs(4),
		RunE: func(c *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open portfolio: %w", err)
			}
			entries, err := repository.ParsePortfolio(f)
			f.Close()
			if err != nil {
				return err
			}
			capital, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid capital %q: %w", args[3], err)
			}

			deps, ctx, err := loadDependencies(c)
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(deps)

			result, err := deps.PerformanceService.Compare(ctx, service.CompareInput{
				Portfolio: entries,
				Start:     args[1],
				End:       args[2],
				Capital:   capital,
			})
			if err != nil {
				return err
			}

			report.PrintComparison(c.OutOrStdout(), result)
			if csvPath != "" {
				return writeCSV(csvPath, func(w io.Writer) error {
					return report.WriteComparisonCSV(w, result)
				})
			}
			return nil
		},
	}
	c.Flags().StringVar(&csvPath, "csv", "", "write the value series to this csv file")
	return c
}

func newWatchCmd() *cobra.Command {
	var (
		cronSpec      string
		lookbackYears int
		runNow        bool
	)
	c := &cobra.Command{
		Use:   "watch FILE THRESHOLD",
		Short: "rerun the screen on a cron schedule over a rolling lookback window",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			companies, _, err := readCompanyList(args[0])
			if err != nil {
				return err
			}
			threshold, err := parseThreshold(args[1])
			if err != nil {
				return err
			}

			deps, ctx, err := loadDependencies(c)
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(deps)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := scheduler.NewScheduler(ctx, deps.MeanReversionService, companies, threshold, lookbackYears, c.OutOrStdout())
			mailer, err := cmd.NewMailer(ctx, deps.Secrets)
			if err != nil {
				return err
			}
			if mailer != nil {
				s.Mailer = mailer
				s.Recipients = deps.Secrets.SES.Recipients
			}
			if err := s.Register(cronSpec); err != nil {
				return err
			}
			if runNow {
				if _, err := s.RunNow(); err != nil {
					return err
				}
			}

			s.Start()
			<-ctx.Done()
			s.Stop()
			return nil
		},
	}
	c.Flags().StringVar(&cronSpec, "cron", "0 18 * * 1-5", "cron schedule for the screen")
	c.Flags().IntVar(&lookbackYears, "lookback-years", 5, "years of history each screen uses")
	c.Flags().BoolVar(&runNow, "run-now", false, "screen once before waiting for the schedule")
	return c
}
