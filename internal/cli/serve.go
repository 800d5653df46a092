package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookrec/internal/adapter/store"
	"bookrec/internal/api"
	"bookrec/internal/logger"
	"bookrec/internal/usecase"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recommendation HTTP server",
	Long: `Start the HTTP API. The catalog starts empty; upload a CSV with
'bookrec ingest' or POST /ingest/csv. When storage.path is configured the
last uploaded catalog is restored on startup.

Examples:
  bookrec serve
  bookrec serve --addr :9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	log := logger.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	var snapshots *store.BoltStore
	if cfg.Storage.Path != "" {
		var err error
		snapshots, err = store.Open(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("failed to open snapshot store: %w", err)
		}
		defer snapshots.Close()
	}

	engine := usecase.NewEngine(cfg, log, snapshots)
	if err := engine.Restore(); err != nil {
		return err
	}

	server := api.NewServer(engine, cfg, log)
	return server.ListenAndServe()
}
