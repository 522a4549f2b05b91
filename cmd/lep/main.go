package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/dsci3d/learning-energy-profile/adapters/render"
	"github.com/dsci3d/learning-energy-profile/app"
	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
	"github.com/dsci3d/learning-energy-profile/internal/config"
	"github.com/dsci3d/learning-energy-profile/internal/migration"
	"github.com/dsci3d/learning-energy-profile/internal/server"
)

const runDirLayout = "20060102_150405"

var (
	cfg        *config.Config
	configPath string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lep",
		Short: "Score and report Learning Energy Profile (LEP-88) questionnaires",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			return err
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose progress output")

	rootCmd.AddCommand(
		newScoreCmd(),
		newRenderCmd(),
		newExportCmd(),
		newWorkflowCmd(),
		newSessionsCmd(),
		newCohortCmd(),
		newInstrumentCmd(),
		newSelfcheckCmd(),
		newMigrateCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newService() (*app.Service, error) {
	tax, err := instrument.New()
	if err != nil {
		return nil, err
	}
	return app.NewService(tax, nil), nil
}

func logf(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func newScoreCmd() *cobra.Command {
	var input, id, output string
	var report, quiet bool

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a ratings file (csv, xlsx or json) into a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newService()
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.OutputDir
			}

			logf("scoring %s", input)
			profile, err := service.ScoreFile(input, scoring.Options{
				ID:        id,
				CreatedAt: time.Now().UTC(),
			})
			if err != nil {
				return err
			}

			runDir := filepath.Join(output, time.Now().UTC().Format(runDirLayout))
			if err := os.MkdirAll(runDir, 0o755); err != nil {
				return err
			}

			jsonPath := filepath.Join(runDir, "profile.json")
			if err := writeFile(jsonPath, func(f *os.File) error {
				return render.WriteJSON(f, profile)
			}); err != nil {
				return err
			}
			logf("wrote %s", jsonPath)

			if report {
				reportPath := filepath.Join(runDir, "report.txt")
				if err := writeFile(reportPath, func(f *os.File) error {
					return render.WriteText(f, profile, render.TextOptions{})
				}); err != nil {
					return err
				}
				logf("wrote %s", reportPath)
			}

			if !quiet {
				if err := render.WriteText(os.Stdout, profile, render.TextOptions{Color: cfg.Color}); err != nil {
					return err
				}
			}
			fmt.Printf("Profile written to %s\n", runDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "ratings file (.csv, .xlsx or .json)")
	cmd.Flags().StringVar(&id, "id", "", "respondent identifier stored in the profile")
	cmd.Flags().StringVar(&output, "output", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&report, "report", false, "also write a text report next to the JSON")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress the report on stdout")
	cmd.MarkFlagRequired("input")

	return cmd
}

func newRenderCmd() *cobra.Command {
	var profilePath, format string
	var colorize bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scored profile JSON as text, markdown or html",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			switch format {
			case "text":
				return render.WriteText(os.Stdout, profile, render.TextOptions{Color: colorize})
			case "markdown":
				return render.WriteMarkdown(os.Stdout, profile)
			case "html":
				return render.WriteHTML(os.Stdout, profile)
			default:
				return fmt.Errorf("unknown format %q (have: text, markdown, html)", format)
			}
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "profile JSON produced by 'lep score'")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, markdown or html")
	cmd.Flags().BoolVar(&colorize, "color", false, "ANSI colors for the text format")
	cmd.MarkFlagRequired("profile")

	return cmd
}

func newExportCmd() *cobra.Command {
	var profilePath, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a scored profile JSON as an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			if err := render.WriteWorkbook(out, profile); err != nil {
				return err
			}
			fmt.Printf("Workbook written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "profile JSON produced by 'lep score'")
	cmd.Flags().StringVar(&out, "out", "profile.xlsx", "workbook path")
	cmd.MarkFlagRequired("profile")

	return cmd
}

func newWorkflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Run scripted multi-stage scoring workflows",
	}

	var input, output, id string
	runCmd := &cobra.Command{
		Use:   "run <" + joinNames() + ">",
		Short: "Execute a named workflow against a ratings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newService()
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.OutputDir
			}

			runner := app.NewWorkflowRunner(service, output)
			run, err := runner.Run(args[0], input, scoring.Options{
				ID:        id,
				CreatedAt: time.Now().UTC(),
			})
			if err != nil {
				return err
			}

			printRun(run)
			if !run.OK() {
				return fmt.Errorf("workflow %q failed (%d of %d stages)", run.Workflow, run.Summary.Failed, run.Summary.TotalStages)
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&input, "input", "", "ratings file (required by scoring workflows)")
	runCmd.Flags().StringVar(&output, "output", "", "output directory (default from config)")
	runCmd.Flags().StringVar(&id, "id", "", "respondent identifier")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the available workflows",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range app.WorkflowNames() {
				stages, _ := app.WorkflowStages(name)
				fmt.Printf("%-10s", name)
				for i, stage := range stages {
					if i > 0 {
						fmt.Print(" -> ")
					}
					fmt.Print(stage)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.AddCommand(runCmd, listCmd)
	return cmd
}

func joinNames() string {
	names := app.WorkflowNames()
	out := ""
	for i, name := range names {
		if i > 0 {
			out += "|"
		}
		out += name
	}
	return out
}

func printRun(run *app.WorkflowRun) {
	fmt.Printf("Workflow %q -> %s\n", run.Workflow, run.RunDir)
	for _, stage := range run.Stages {
		status := "ok"
		if !stage.Success {
			status = "FAILED: " + stage.Error
		}
		fmt.Printf("  %-8s %6dms  %s\n", stage.Stage, stage.DurationMs, status)
		for _, file := range stage.OutputFiles {
			fmt.Printf("           - %s\n", file)
		}
	}
	fmt.Printf("%d/%d stages succeeded in %dms\n",
		run.Summary.Successful, run.Summary.TotalStages, run.Summary.TotalDurationMs)
}

func newSessionsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded workflow runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = cfg.OutputDir
			}
			runs, err := app.ListSessions(output)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No sessions recorded.")
				return nil
			}
			fmt.Printf("%-20s %-10s %-8s %s\n", "STARTED", "WORKFLOW", "STAGES", "RESULT")
			for _, run := range runs {
				result := "ok"
				if !run.OK() {
					result = fmt.Sprintf("%d failed", run.Summary.Failed)
				}
				fmt.Printf("%-20s %-10s %-8d %s\n",
					run.StartedAt.Format("2006-01-02 15:04:05"),
					run.Workflow, run.Summary.TotalStages, result)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "output directory holding the session index")
	return cmd
}

func newCohortCmd() *cobra.Command {
	var dir string
	var workers int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "cohort",
		Short: "Score a directory of rating files and summarize the cohort",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newService()
			if err != nil {
				return err
			}
			if workers == 0 {
				workers = cfg.Workers
			}

			report, err := app.ScoreCohort(service, dir, workers)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printCohort(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory of rating files")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel scoring workers (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the report as JSON")
	cmd.MarkFlagRequired("dir")

	return cmd
}

func printCohort(report *app.CohortReport) {
	fmt.Printf("Cohort: %s\n", report.Directory)
	fmt.Printf("Files: %d scanned, %d scored, %d failed\n",
		report.FilesScanned, report.Scored, report.Failed)
	fmt.Printf("Quality-check rate: %.1f%%\n\n", report.QualityCheckRate*100)

	fmt.Printf("%-45s %4s %7s %7s %7s %7s %7s\n",
		"DIMENSION", "N", "MEAN", "SD", "MIN", "MEDIAN", "MAX")
	for _, dim := range instrument.Dimensions() {
		stats, ok := report.Dimensions[dim]
		if !ok {
			continue
		}
		fmt.Printf("%-45s %4d %7.1f %7.1f %7.1f %7.1f %7.1f\n",
			stats.Label, stats.N, stats.Mean, stats.StdDev, stats.Min, stats.Median, stats.Max)
	}

	if len(report.Errors) > 0 {
		fmt.Println("\nFailures:")
		for _, fileErr := range report.Errors {
			fmt.Printf("  %s: %s\n", fileErr.File, fileErr.Error)
		}
	}
}

func newInstrumentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "instrument",
		Short: "Describe the loaded item taxonomy",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newService()
			if err != nil {
				return err
			}
			summary := service.Instrument()

			fmt.Printf("%s (engine %s)\n", summary.Name, summary.EngineVersion)
			fmt.Printf("%d items: %d main-scale (%d reverse-scored), %d auxiliary\n\n",
				summary.NumItems, summary.NumMainScale, summary.NumReversed, summary.NumAuxiliary)

			for _, dim := range summary.Dimensions {
				fmt.Printf("%-12s %-45s %2d items, %d reversed\n",
					dim.Key, dim.Label, dim.MainItems, dim.ReversedItems)
			}

			fmt.Println()
			for _, item := range summary.Items {
				flags := ""
				if !item.IncludeInMainScale {
					flags += " aux"
				}
				if item.ReverseScored {
					flags += " rev"
				}
				fmt.Printf("%-5s %-12s %-30s%s\n", item.Code, item.Dimension, item.Facet, flags)
			}
			return nil
		},
	}
}

func newSelfcheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selfcheck",
		Short: "Re-assert the taxonomy and scoring invariants",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := app.SelfCheck()
			for _, check := range report.Checks {
				status := "ok"
				if !check.OK {
					status = "FAIL: " + check.Detail
				}
				fmt.Printf("  %-30s %s\n", check.Name, status)
			}
			fmt.Printf("%d passed, %d failed\n", report.Passed, report.Failed)
			if !report.OK() {
				return fmt.Errorf("self-check failed")
			}
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the profile archive schema to the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.RequireDatabase(); err != nil {
				return err
			}
			db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			runner := migration.NewRunner()
			if err := runner.Run(ctx, db); err != nil {
				return err
			}
			fmt.Printf("Schema %s applied.\n", runner.Version())
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and scoring page",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Addr = addr
			}
			return server.Run(cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func loadProfile(path string) (*scoring.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var profile scoring.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("%s is not a profile JSON: %w", path, err)
	}
	if len(profile.Dimensions) == 0 {
		return nil, fmt.Errorf("%s is not a profile JSON: no dimensions", path)
	}
	return &profile, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
