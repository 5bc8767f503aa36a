// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"finterm/internal/config"
	"finterm/internal/core"
	"finterm/internal/extract"
	"finterm/internal/golden"
	"finterm/internal/help"
	"finterm/internal/observability"
	"finterm/internal/session"
	"finterm/internal/statement"
	"finterm/internal/version"

	"finterm/internal/formatters"
	_ "finterm/internal/formatters/csv"
	_ "finterm/internal/formatters/json"
	_ "finterm/internal/formatters/text"
)

// configFlags holds command line flag values
type configFlags struct {
	text         string
	file         string
	pdf          string
	goldenPath   string
	taxonomyPath string
	standard     string
	configFile   string
	profile      string
	format       string
	confidence   string
	workers      int
	f1Floor      float64
	output       string
	verbose      bool
	debug        bool
	noColor      bool
	showVersion  bool
	showHelp     bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Println(version.Info())
		return
	}
	if flags.showHelp {
		runHelp(flags)
		return
	}

	if flags.text == "" && flags.file == "" && flags.pdf == "" && flags.goldenPath == "" {
		help.NewSystem(flags.noColor).ShowGeneralHelp()
		os.Exit(2)
	}

	cfg := loadConfiguration(flags.configFile)
	if flags.profile != "" {
		if err := cfg.ApplyProfile(flags.profile); err != nil {
			fatal(err)
		}
	}
	applyFlagOverrides(cfg, flags)

	observer := buildObserver(cfg)
	engine, err := core.NewEngine(context.Background(), cfg, observer)
	if err != nil {
		fatal(err)
	}

	ctx := context.Background()
	switch {
	case flags.goldenPath != "":
		runGolden(ctx, engine, cfg, flags)
	case flags.text != "":
		runText(ctx, engine, cfg, flags)
	default:
		runDocument(ctx, engine, cfg, flags)
	}
}

func parseFlags() *configFlags {
	flags := &configFlags{}
	flag.StringVar(&flags.text, "text", "", "Match a single statement line and exit")
	flag.StringVar(&flags.file, "file", "", "Path to a plain-text statement to match")
	flag.StringVar(&flags.pdf, "pdf", "", "Path to a PDF statement to extract and match")
	flag.StringVar(&flags.goldenPath, "golden", "", "Path to a golden-set YAML file to evaluate")
	flag.StringVar(&flags.taxonomyPath, "taxonomy", "", "Taxonomy YAML file (default: built-in term set)")
	flag.StringVar(&flags.standard, "standard", "", "Keyword standard: indas, gaap, ifrs, all")
	flag.StringVar(&flags.configFile, "config", "", "Path to configuration file (YAML)")
	flag.StringVar(&flags.profile, "profile", "", "Profile name to use from config file")
	flag.StringVar(&flags.format, "format", "", "Output format: text, json, csv")
	flag.StringVar(&flags.confidence, "confidence", "", "Confidence levels to display: high,medium,low,all")
	flag.IntVar(&flags.workers, "workers", 0, "Worker count for document matching (default: CPU count)")
	flag.Float64Var(&flags.f1Floor, "f1-floor", 0, "Fail golden runs whose F1 drops below this value")
	flag.StringVar(&flags.output, "output", "", "Path to output file (default: stdout)")
	flag.BoolVar(&flags.verbose, "verbose", false, "Display detailed information for each match")
	flag.BoolVar(&flags.debug, "debug", false, "Enable debug logging of pipeline operations")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.showVersion, "version", false, "Show version information")
	flag.BoolVar(&flags.showHelp, "help", false, "Show help (use '--help layers' or '--help <layer>')")
	flag.Parse()

	// Piped output never gets ANSI colors.
	if !isTerminal(os.Stdout) {
		flags.noColor = true
	}
	return flags
}

func runHelp(flags *configFlags) {
	system := help.NewSystem(flags.noColor)
	args := flag.Args()
	switch {
	case len(args) == 0:
		system.ShowGeneralHelp()
	case args[0] == "layers":
		system.ShowLayersHelp()
	default:
		if !system.ShowLayerHelp(args[0]) {
			os.Exit(2)
		}
	}
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

// applyFlagOverrides lets explicit flags win over config and profile.
func applyFlagOverrides(cfg *config.Config, flags *configFlags) {
	if flags.taxonomyPath != "" {
		cfg.Taxonomy.Path = flags.taxonomyPath
	}
	if flags.standard != "" {
		cfg.Defaults.Standard = flags.standard
	}
	if flags.format != "" {
		cfg.Defaults.Format = flags.format
	}
	if flags.confidence != "" {
		cfg.Defaults.ConfidenceLevels = flags.confidence
	}
	if flags.workers > 0 {
		cfg.Defaults.Workers = flags.workers
	}
	if flags.f1Floor > 0 {
		cfg.Golden.F1Floor = flags.f1Floor
	}
	if flags.verbose {
		cfg.Defaults.Verbose = true
	}
	if flags.debug {
		cfg.Defaults.Debug = true
	}
	if flags.noColor {
		cfg.Defaults.NoColor = true
	}
}

func buildObserver(cfg *config.Config) *observability.StandardObserver {
	observer := observability.NewStandardObserver(observability.ObservabilityMetrics, os.Stderr)
	if cfg.Defaults.Debug {
		debugObs := observability.NewDebugObserver(os.Stderr)
		observer = debugObs.StandardObserver
		observer.DebugObserver = debugObs
	}
	return observer
}

func runText(ctx context.Context, engine *core.Engine, cfg *config.Config, flags *configFlags) {
	lines := []statement.RawLine{{Text: flags.text, Line: 1}}
	sess, err := engine.MatchDocument(ctx, lines)
	if err != nil {
		fatal(err)
	}
	emit(sess, cfg, flags)
}

func runDocument(ctx context.Context, engine *core.Engine, cfg *config.Config, flags *configFlags) {
	var lines []statement.RawLine
	var err error
	if flags.pdf != "" {
		lines, err = extract.PDFLines(flags.pdf)
	} else {
		lines, err = extract.FileLines(flags.file)
	}
	if err != nil {
		fatal(err)
	}

	sess, err := engine.MatchDocument(ctx, lines)
	if err != nil {
		fatal(err)
	}
	emit(sess, cfg, flags)
}

func runGolden(ctx context.Context, engine *core.Engine, cfg *config.Config, flags *configFlags) {
	set, err := golden.LoadSet(flags.goldenPath)
	if err != nil {
		fatal(err)
	}
	report, err := engine.Validate(ctx, set)
	if err != nil {
		fatal(err)
	}

	out := os.Stdout
	if flags.output != "" {
		f, err := os.Create(flags.output)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		out = f
	}

	if cfg.Defaults.Format == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fatal(err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		printReport(out, report)
	}

	if !report.MeetsFloor(cfg.Golden.F1Floor) {
		fmt.Fprintf(os.Stderr, "F1 %.4f below floor %.4f\n", report.F1, cfg.Golden.F1Floor)
		os.Exit(1)
	}
}

func printReport(out *os.File, report golden.Report) {
	fmt.Fprintf(out, "Golden set: %d cases\n", report.Cases)
	fmt.Fprintf(out, "Precision: %.4f  Recall: %.4f  F1: %.4f\n", report.Precision, report.Recall, report.F1)

	if len(report.PerCategory) > 0 {
		fmt.Fprintln(out, "\nPer category:")
		var categories []string
		for c := range report.PerCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			s := report.PerCategory[c]
			fmt.Fprintf(out, "  %-28s P %.4f  R %.4f  F1 %.4f\n", c, s.Precision, s.Recall, s.F1)
		}
	}
	if len(report.Mistakes) > 0 {
		fmt.Fprintln(out, "\nMistakes:")
		for _, m := range report.Mistakes {
			fmt.Fprintf(out, "  %q: expected %q, got %q\n", m.Text, m.Expected, m.Got)
		}
	}
}

func emit(sess *session.ExtractionSession, cfg *config.Config, flags *configFlags) {
	options := formatters.FormatterOptions{
		ConfidenceLevel: core.ParseConfidenceLevels(cfg.Defaults.ConfidenceLevels),
		Verbose:         cfg.Defaults.Verbose,
		NoColor:         cfg.Defaults.NoColor,
		ShowUnmatched:   cfg.Defaults.Verbose,
	}

	content, err := formatters.Export(cfg.Defaults.Format, sess, options)
	if err != nil {
		fatal(err)
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, []byte(content), 0o644); err != nil {
			fatal(err)
		}
		return
	}
	fmt.Print(content)
	if !strings.HasSuffix(content, "\n") {
		fmt.Println()
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
