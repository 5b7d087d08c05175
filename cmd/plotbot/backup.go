package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func (a *app) newChatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chats",
		Short: "List stored chats and their plots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStorage()
			if err != nil {
				return err
			}
			defer closeStorage(store)

			ids, err := store.ChatIDs(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range ids {
				reg, err := store.LoadChat(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d: %d plots (%d archived)\n", id, reg.Len(), len(reg.ArchivedIDs()))
				for _, ch := range reg.Active() {
					fmt.Fprintf(out, "  (%d): %s [%s] by %s, %d points\n", ch.Info().ID, ch.Title(), ch.Kind(), ch.Info().Creator, ch.Len())
				}
			}
			return nil
		},
	}
}

func (a *app) newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every stored chat to a JSON backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = filepath.Join(a.cfg.Storage.BackupDir, "plotbot-"+time.Now().UTC().Format("20060102-150405")+".json")
			}
			store, err := a.openStorage()
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if err := store.Export(cmd.Context(), out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "backup file (default: a timestamped file in storage.backup_dir)")
	return cmd
}

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <backup.json>",
		Short: "Load chats from a JSON backup, replacing stored ones with the same id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStorage()
			if err != nil {
				return err
			}
			defer closeStorage(store)

			n, err := store.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d chats\n", n)
			return nil
		},
	}
}
