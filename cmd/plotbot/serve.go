package main

import (
	"github.com/spf13/cobra"

	"github.com/rewired-gh/plotbot/internal/logger"
	"github.com/rewired-gh/plotbot/internal/telegram"
)

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to Telegram and answer commands until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateBot(); err != nil {
				return err
			}

			store, err := a.openStorage()
			if err != nil {
				return err
			}
			defer closeStorage(store)

			client, err := telegram.NewClient(a.cfg.Telegram.BotToken, telegram.Options{
				MaxRetries:     a.cfg.Telegram.MaxRetries,
				RetryDelayBase: a.cfg.Telegram.RetryDelay,
				UpdateTimeout:  a.cfg.Telegram.UpdateTimeout,
				Debug:          a.cfg.Telegram.Debug,
			})
			if err != nil {
				return err
			}

			h := a.handler(store)
			if err := client.SetCommands(h); err != nil {
				logger.Warn("%v", err)
			}

			logger.Info("Serving with storage at %s", store.Path())
			return client.Run(cmd.Context(), h)
		},
	}
}
