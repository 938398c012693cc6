package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ui-showcase/internal/catalog"
	"github.com/ziadkadry99/ui-showcase/internal/loader"
	"github.com/ziadkadry99/ui-showcase/internal/panel"
	"github.com/ziadkadry99/ui-showcase/internal/progress"
)

var checkCmd = &cobra.Command{
	Use:   "check <base-url>",
	Short: "Verify every catalog component against a running host",
	Long: `Retrieves every catalog component and info panel from the given host and
reports the ones that are missing, including those the host masks by serving
the shell page instead of a 404.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkFailure is one component or panel that could not be retrieved.
type checkFailure struct {
	Target string
	Kind   loader.Kind
	Err    error
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	fetcher, err := loader.NewHTTPFetcher(args[0], loader.WithRateLimit(cfg.FetchRate, 1))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporter := progress.NewReporter(os.Stderr, "Checking components")
	failures, err := checkAll(ctx, fetcher, cfg.ShellMarker(), cat, cfg.Panels, reporter, logger)
	if err != nil {
		return err
	}

	total := cat.Count() + len(cfg.Panels)
	if len(failures) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "All %d targets OK\n", total)
		return nil
	}
	for _, f := range failures {
		fmt.Fprintf(cmd.OutOrStdout(), "  FAIL  %-18s %s: %v\n", f.Kind, f.Target, f.Err)
	}
	return fmt.Errorf("%d of %d targets failed", len(failures), total)
}

// checkAll loads every component of cat and every panel in defs through
// fetcher. Only context cancellation aborts the run.
func checkAll(ctx context.Context, fetcher loader.Fetcher, shellMarker string, cat *catalog.Catalog,
	defs []panel.Definition, reporter progress.Reporter, logger zerolog.Logger) ([]checkFailure, error) {

	l := loader.New(fetcher, shellMarker, logger)
	x := panel.NewExtractor(fetcher)

	comps := cat.AllComponents()
	reporter.Start(len(comps) + len(defs))
	defer reporter.Finish()

	var failures []checkFailure
	done := 0
	for _, d := range comps {
		_, err := l.Load(ctx, d)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return failures, err
			}
			failures = append(failures, checkFailure{Target: d.Path, Kind: loader.KindOf(err), Err: err})
		}
		done++
		reporter.Update(done, d.ID, err)
	}
	for _, def := range defs {
		_, err := x.Extract(ctx, def.ID, def.Source)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return failures, err
			}
			failures = append(failures, checkFailure{Target: def.Source + "#" + def.ID, Kind: loader.KindOf(err), Err: err})
		}
		done++
		reporter.Update(done, def.ID, err)
	}
	return failures, nil
}
