package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ui-showcase/internal/catalog"
	"github.com/ziadkadry99/ui-showcase/internal/config"
	"github.com/ziadkadry99/ui-showcase/internal/db"
	"github.com/ziadkadry99/ui-showcase/internal/loadlog"
	"github.com/ziadkadry99/ui-showcase/internal/server"
	"github.com/ziadkadry99/ui-showcase/internal/session"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the showcase server",
	Long:  `Serves the showcase shell page, the component demos and the viewer session API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		interval, err := cfg.Interval()
		if err != nil {
			return err
		}

		cat, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		holder := catalog.NewHolder(cat)

		if cfg.Watch && cfg.CatalogFile != "" {
			watcher, err := catalog.NewWatcher(cfg.CatalogFile, holder.Store, logger)
			if err != nil {
				return fmt.Errorf("watching catalog: %w", err)
			}
			watcher.Start()
			defer watcher.Stop()
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		srvCfg := server.Config{
			Port:             cfg.Port,
			AllowAll:         cfg.AllowAllOrigins,
			ShellTitle:       cfg.ShellTitle,
			ShellMarker:      cfg.ShellMarker(),
			ContentDir:       cfg.ContentDir,
			Panels:           cfg.Panels,
			AutoplayInterval: interval,
		}

		// Open database. The file store keeps preferences only; there is no
		// load log without a database.
		var (
			database *db.DB
			loads    *loadlog.Store
			recorder session.Recorder
			storeAt  string
		)
		switch cfg.Store {
		case config.StoreFile:
			storeAt = filepath.Join(cfg.DataDir, "preferences")
			srvCfg.PreferencesDir = storeAt
		default:
			storeAt = filepath.Join(cfg.DataDir, "showcase.db")
			database, err = db.Open(storeAt)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()
			loads = loadlog.NewStore(database)
			recorder = loads
		}

		srv, err := server.New(srvCfg, database, holder, recorder, logger)
		if err != nil {
			return err
		}
		if loads != nil {
			loadlog.RegisterRoutes(srv.Router(), loads)
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "showcase v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Preferences (%s): %s\n", cfg.Store, storeAt)
		fmt.Fprintf(os.Stderr, "  Content: %s\n", cfg.ContentDir)
		fmt.Fprintf(os.Stderr, "  Components: %d in %d categories\n", cat.Count(), len(cat.Categories()))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serverCmd)
}
