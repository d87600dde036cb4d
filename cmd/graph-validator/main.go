package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/254carbon/graph-validator/pkg/catalog"
	"github.com/254carbon/graph-validator/pkg/config"
	"github.com/254carbon/graph-validator/pkg/graph"
	"github.com/254carbon/graph-validator/pkg/logging"
	"github.com/254carbon/graph-validator/pkg/output"
	"github.com/254carbon/graph-validator/pkg/report"
	"github.com/254carbon/graph-validator/pkg/rules"
	"github.com/254carbon/graph-validator/pkg/validate"
	"github.com/254carbon/graph-validator/pkg/watcher"
)

func main() {
	f := pflag.NewFlagSet("graph-validator", pflag.ContinueOnError)
	f.String("catalog", "", "Path to catalog file (default: auto-detect under catalog/)")
	f.String("rules", "config/rules.yaml", "Path to architecture rules file")
	f.String("output", "catalog", "Directory for graph and violation outputs")
	f.Bool("watch", false, "Re-run validation when the catalog or rules change")
	f.Bool("json-logs", false, "Emit logs as JSON instead of compact console format")
	f.String("verbosity", "", "Log level: debug, info, warn, error")
	f.CountP("verbose", "v", "Increase log verbosity")

	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if cfg.JSONLogs {
		logging.SetJSONOutput(cfg.LogLevel())
	} else {
		logging.SetLevel(cfg.LogLevel())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Watch {
		runWatch(ctx, cfg)
		return
	}

	rep, err := runValidation(ctx, cfg)
	if err != nil {
		logging.Fatal("graph validation failed", "error", err)
	}
	if rep.Summary.Errors > 0 {
		os.Exit(1)
	}
}

// runValidation executes one single-shot validation pass: load, build,
// check, report
func runValidation(ctx context.Context, cfg *config.Config) (*report.Report, error) {
	ctx = logging.WithRunID(ctx, uuid.NewString())
	logging.InfoContext(ctx, "running dependency graph validation")

	catalogPath, err := catalog.Find(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	svcCatalog, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}

	r, err := rules.Load(cfg.RulesFile)
	if err != nil {
		return nil, err
	}

	dg := graph.Build(svcCatalog)
	violations := validate.Run(dg, svcCatalog.DomainIndex(), r)

	now := time.Now()
	rep := report.Assemble(svcCatalog, dg, violations, now)
	artifact := report.BuildArtifact(svcCatalog, dg, r, now)

	if err := report.Write(cfg.OutputDir, artifact, rep); err != nil {
		return nil, err
	}

	if rep.Summary.Passed {
		logging.InfoContext(ctx, "all dependency validations passed",
			"warnings", rep.Summary.Warnings)
	} else {
		logging.ErrorContext(ctx, "dependency validation failed",
			"violations", rep.Metadata.TotalViolations,
			"errors", rep.Summary.Errors,
			"warnings", rep.Summary.Warnings)
	}

	output.PrintValidationReport(rep)
	return rep, nil
}

// runWatch validates once, then re-runs the pipeline whenever the catalog
// or rules file changes, until interrupted
func runWatch(ctx context.Context, cfg *config.Config) {
	if _, err := runValidation(ctx, cfg); err != nil {
		logging.Error("graph validation failed", "error", err)
	}

	catalogPath, err := catalog.Find(cfg.CatalogFile)
	if err != nil {
		logging.Fatal("cannot watch without a catalog", "error", err)
	}

	fw, err := watcher.NewFileWatcher(catalogPath, cfg.RulesFile)
	if err != nil {
		logging.Fatal("failed to create watcher", "error", err)
	}
	if err := fw.Start(ctx); err != nil {
		logging.Fatal("failed to start watcher", "error", err)
	}

	debouncer := watcher.NewDebouncer(fw.Events(), 500*time.Millisecond, 5*time.Second)
	debouncer.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("shutting down")
			return
		case event, ok := <-debouncer.Output():
			if !ok {
				return
			}
			logging.Info("validation inputs changed", "paths", fmt.Sprint(event.Paths))
			if _, err := runValidation(ctx, cfg); err != nil {
				logging.Error("graph validation failed", "error", err)
			}
		}
	}
}
