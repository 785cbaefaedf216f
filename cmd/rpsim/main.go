package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/rpsim/internal/calendar"
	"github.com/rgehrsitz/rpsim/internal/config"
	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/rgehrsitz/rpsim/internal/output"
	"github.com/rgehrsitz/rpsim/internal/portfolio"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements portfolio.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Environment variables that provide flag defaults. They may also be set in a
// .env file in the working directory.
const (
	envFormat = "RPSIM_FORMAT"
	envDays   = "RPSIM_DAYS"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rpsim %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// loadEnv reads .env if present. A missing file is not an error.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rpsim",
		Short: "Personal finance simulator CLI",
		Long:  "Day-by-day simulation of deposit, investment and retirement accounts with annual federal tax settlement",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv()
		},
		SilenceUsage: true,
	}
	root.AddCommand(simulateCmd(), validateCmd(), schedulesCmd(), versionCmd())
	return root
}

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [input-file]",
		Short: "Simulate a scenario and print its balance sheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulate,
	}
	cmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s); default $%s or console", strings.Join(output.FormatterNames(), ", "), envFormat))
	cmd.Flags().IntP("days", "n", -1, fmt.Sprintf("Number of days to simulate; default $%s or the scenario's days", envDays))
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD), overrides the scenario")
	cmd.Flags().String("yearly", "", "Keep one row per year: first or last")
	cmd.Flags().Bool("render", false, "Render markdown output for the terminal")
	cmd.Flags().String("style", "auto", "Markdown render style (auto, dark, light, notty)")
	cmd.Flags().Bool("debug", false, "Enable debug logging of settlements and transfers")
	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(args[0])
	if err != nil {
		return err
	}

	opts, err := simulateOptionsFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	f := output.GetFormatterByName(opts.format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s", opts.format)
	}
	if opts.render && f.Name() != "markdown" {
		return fmt.Errorf("--render requires markdown output, got %s", f.Name())
	}
	var method portfolio.SampleMethod
	if opts.yearly != "" {
		if method, err = portfolio.ParseSampleMethod(opts.yearly); err != nil {
			return err
		}
	}

	p, err := config.BuildPortfolio(cfg)
	if err != nil {
		return err
	}
	if opts.debug {
		p.SetLogger(simpleCLILogger{})
	}

	report, err := simulate(p, opts.start, opts.days)
	if err != nil {
		return err
	}
	if opts.yearly != "" {
		report = report.Resampled(method)
	}

	if opts.render {
		f = renderedMarkdown(f, opts.style)
	}
	return output.WriteFormatted(cmd.OutOrStdout(), f, report)
}

// renderedMarkdown wraps a markdown formatter so its output is rendered for
// the terminal.
func renderedMarkdown(f output.Formatter, style string) output.Formatter {
	return output.FormatterFunc{
		ID: f.Name(),
		F: func(r *output.Report) ([]byte, error) {
			md, err := f.Format(r)
			if err != nil {
				return nil, err
			}
			rendered, err := output.RenderMarkdown(md, style, 120)
			if err != nil {
				return nil, err
			}
			return []byte(rendered), nil
		},
	}
}

type simulateOptions struct {
	format string
	days   int
	start  time.Time
	yearly string
	render bool
	style  string
	debug  bool
}

// simulateOptionsFromFlags resolves each option from its flag, then the
// environment, then the scenario.
func simulateOptionsFromFlags(cmd *cobra.Command, cfg *domain.Configuration) (simulateOptions, error) {
	flags := cmd.Flags()
	opts := simulateOptions{
		format: "console",
		days:   cfg.Simulation.Days,
		start:  cfg.Simulation.StartDate,
	}

	if v := os.Getenv(envFormat); v != "" {
		opts.format = v
	}
	if v, _ := flags.GetString("format"); v != "" {
		opts.format = v
	}

	if v := os.Getenv(envDays); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid %s %q: %w", envDays, v, err)
		}
		opts.days = days
	}
	if flags.Changed("days") {
		opts.days, _ = flags.GetInt("days")
	}
	if opts.days < 0 {
		return opts, fmt.Errorf("days must not be negative, got %d", opts.days)
	}

	if v, _ := flags.GetString("start"); v != "" {
		start, err := time.Parse(calendar.DateFormat, v)
		if err != nil {
			return opts, fmt.Errorf("invalid start date %q: %w", v, err)
		}
		opts.start = start
	}

	opts.yearly, _ = flags.GetString("yearly")
	opts.render, _ = flags.GetBool("render")
	opts.style, _ = flags.GetString("style")
	opts.debug, _ = flags.GetBool("debug")
	return opts, nil
}

// simulate runs p for days days from start and tabulates the records
func simulate(p *portfolio.Portfolio, start time.Time, days int) (*output.Report, error) {
	run, err := p.Start(start)
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, days)
	for range days {
		records = append(records, run.Next())
	}
	report := output.NewReport(p, run.ID(), records)
	report.LastReturn = run.State().LastReturn
	return report, nil
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(inputFile)
			if err != nil {
				return err
			}
			p, err := config.BuildPortfolio(cfg)
			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d accounts, %d transfers, %d distributions)\n",
				inputFile, len(p.Accounts()), len(p.Transfers()), len(p.Distributions()))
			return nil
		},
	}
}

func schedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules",
		Short: "List built-in schedule names",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range calendar.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s<RFC 5545 text>\n", calendar.RRulePrefix)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
