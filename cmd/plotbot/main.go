// Command plotbot runs the chart bot and offers offline tools for the data
// it stores.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/plotbot/internal/commands"
	"github.com/rewired-gh/plotbot/internal/config"
	"github.com/rewired-gh/plotbot/internal/logger"
	"github.com/rewired-gh/plotbot/internal/render"
	"github.com/rewired-gh/plotbot/internal/storage"
)

// app holds what every subcommand shares once the config is loaded.
type app struct {
	configPath string
	cfg        *config.Config
}

func main() {
	a := &app{}
	root := &cobra.Command{
		Use:           "plotbot",
		Short:         "Telegram bot for collaborative charts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a configuration file (optional)")

	root.AddCommand(
		a.newServeCmd(),
		a.newRenderCmd(),
		a.newChatsCmd(),
		a.newSheetCmd(),
		a.newExportCmd(),
		a.newImportCmd(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	cancel()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	if a.configPath != "" {
		logger.Info("Configuration loaded from %s", a.configPath)
	}
	a.cfg = cfg
	return nil
}

func (a *app) openStorage() (*storage.Storage, error) {
	store, err := storage.New(a.cfg.Storage.FilePath, storage.WithBusyTimeout(a.cfg.Storage.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}

func closeStorage(store *storage.Storage) {
	if err := store.Close(); err != nil {
		logger.Error("Failed to close storage: %v", err)
	}
}

func (a *app) renderer() *render.Renderer {
	return render.New(render.Options{
		Width:  a.cfg.Render.Width,
		Height: a.cfg.Render.Height,
		Format: a.cfg.Render.Format,
	})
}

func (a *app) handler(store commands.Store) *commands.Handler {
	return commands.New(store, a.renderer(), commands.Options{
		ContourGrid:   a.cfg.Render.ContourGrid,
		ContourLevels: a.cfg.Render.ContourLevels,
	})
}
