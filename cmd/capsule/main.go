package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/capsulejs/capsule/internal/build"
	"github.com/capsulejs/capsule/internal/config"
	"github.com/capsulejs/capsule/internal/logging"
	"github.com/capsulejs/capsule/internal/watch"
)

func main() {
	var (
		watchMode     = flag.Bool("watch", false, "Rebuild on source changes")
		check         = flag.Bool("check", false, "Verify the bundle in the sandbox after writing")
		sourceMaps    = flag.Bool("source-maps", false, "Embed an inline source map")
		stripComments = flag.Bool("strip-comments", false, "Strip comments before postprocessing")
		reportPath    = flag.String("report", "", "Write a JSON build report to this path")
		configPath    = flag.String("config", "", "Path to capsule.toml")
		logLevel      = flag.String("log-level", "", "Log level: debug, info, warn, error")
		dev           = flag.Bool("dev", false, "Human-readable console logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: capsule [flags] <entry.js> <out.js>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	entry, dest := flag.Arg(0), flag.Arg(1)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags given explicitly win over environment and file settings.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source-maps":
			cfg.Build.SourceMaps = *sourceMaps
		case "strip-comments":
			cfg.Build.StripComments = *stripComments
		case "report":
			cfg.Build.ReportPath = *reportPath
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "dev":
			cfg.Logging.Development = *dev
		}
	})

	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	builder := build.New(log, build.Options{
		SourceMaps:    cfg.Build.SourceMaps,
		StripComments: cfg.Build.StripComments,
		ReportPath:    cfg.Build.ReportPath,
		Check:         *check,
		CheckTimeout:  time.Duration(cfg.Sandbox.TimeoutMS) * time.Millisecond,
	})

	mode := build.Once
	if *watchMode {
		mode = build.Watch
	}

	if _, ferr := builder.Bundle(entry, dest); ferr != nil {
		build.HandleFailure(log, ferr, mode)
	}

	if !*watchMode {
		return
	}

	watcher, err := watch.New(watch.Config{
		Root:              filepath.Dir(entry),
		Ignore:            cfg.Watch.Ignore,
		RebuildsPerSecond: cfg.Watch.RebuildsPerSecond,
	}, log)
	if err != nil {
		log.Error("Failed to start watcher", zap.Error(err))
		os.Exit(1)
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Watching for changes", zap.String("root", filepath.Dir(entry)))
	err = watcher.Run(ctx, func() {
		if _, ferr := builder.Bundle(entry, dest); ferr != nil {
			build.HandleFailure(log, ferr, build.Watch)
		}
	})
	if err != nil && ctx.Err() == nil {
		log.Error("Watcher stopped", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Shutting down")
}
