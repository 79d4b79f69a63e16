package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/vualidon/FoodRecallReportAgent/pkg/collector"
	"github.com/vualidon/FoodRecallReportAgent/pkg/config"
	"github.com/vualidon/FoodRecallReportAgent/pkg/extractor"
	"github.com/vualidon/FoodRecallReportAgent/pkg/fetcher"
	"github.com/vualidon/FoodRecallReportAgent/pkg/impact"
	"github.com/vualidon/FoodRecallReportAgent/pkg/llm"
	"github.com/vualidon/FoodRecallReportAgent/pkg/pipeline"
	"github.com/vualidon/FoodRecallReportAgent/pkg/report"
	"github.com/vualidon/FoodRecallReportAgent/pkg/search"
	"github.com/vualidon/FoodRecallReportAgent/pkg/store"
)

// Opts with all CLI options
type Opts struct {
	Config string   `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`
	Step   string   `short:"s" long:"step" choice:"collect" choice:"extract" choice:"analyze" choice:"report" choice:"all" default:"all" description:"pipeline step to run"` //nolint:staticcheck // multiple choice tags
	Days   int      `short:"d" long:"days" default:"7" description:"reporting window in days"`
	Input  []string `short:"i" long:"input" description:"record keys or file paths for a single step"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	setupLog(opts.Debug, secrets(cfg)...)
	log.Printf("[INFO] starting recall-agent version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err = run(ctx, opts, cfg)
	cancel()

	if err != nil {
		log.Printf("[ERROR] pipeline failed: %v", err)
		os.Exit(1)
	}
}

// run wires the stages and executes the requested step
func run(ctx context.Context, opts Opts, cfg *config.Config) error {
	rawStore, err := store.New(cfg.Storage.RawDir)
	if err != nil {
		return err
	}
	processedStore, err := store.New(cfg.Storage.ProcessedDir)
	if err != nil {
		return err
	}
	analyzedStore, err := store.New(cfg.Storage.AnalyzedDir)
	if err != nil {
		return err
	}
	reports, err := store.NewReports(cfg.Storage.ReportsDir)
	if err != nil {
		return err
	}

	crawlClient := fetcher.New(cfg.Crawler)
	searchClient := search.New(cfg.Search)
	model := llm.New(cfg.LLM, cfg.Retry)

	p := pipeline.New(
		collector.New(crawlClient, rawStore, cfg.Sources, cfg.Retry),
		extractor.New(rawStore, processedStore, model),
		impact.New(processedStore, analyzedStore, searchClient, model, cfg.Retry),
		report.New(analyzedStore, model, reports),
	)

	rep, path, err := p.RunStep(ctx, opts.Step, opts.Input, opts.Days)
	if err != nil {
		return err
	}

	if rep != nil {
		fmt.Printf("\nreport written to %s\n\n", path)
		preview(os.Stdout, rep.Markdown, 20)
	}
	return nil
}

// preview prints the first n lines of the report body, marking truncation
// only when lines were actually cut
func preview(w io.Writer, body string, n int) {
	lines := strings.Split(body, "\n")
	truncated := len(lines) > n
	if truncated {
		lines = lines[:n]
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
	if truncated {
		fmt.Fprintln(w, "...")
	}
}

// secrets collects the configured API keys for log masking
func secrets(cfg *config.Config) []string {
	var secs []string
	for _, s := range []string{cfg.Crawler.APIKey, cfg.Search.APIKey, cfg.LLM.APIKey} {
		if s != "" {
			secs = append(secs, s)
		}
	}
	return secs
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
