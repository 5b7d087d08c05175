package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/plotbot/internal/sheet"
)

func (a *app) newSheetCmd() *cobra.Command {
	var chatID int64
	var out string
	var archived bool
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Export a chat's plots and points to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStorage()
			if err != nil {
				return err
			}
			defer closeStorage(store)

			reg, err := store.LoadChat(cmd.Context(), chatID)
			if err != nil {
				return err
			}
			charts := reg.Active()
			if archived {
				charts = append(charts, reg.Archived()...)
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := sheet.Write(file, charts); err != nil {
				_ = file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d plots to %s\n", len(charts), out)
			return nil
		},
	}
	cmd.Flags().Int64Var(&chatID, "chat", 0, "chat id")
	cmd.Flags().StringVarP(&out, "out", "o", "plots.xlsx", "output file")
	cmd.Flags().BoolVar(&archived, "archived", false, "include archived plots")
	_ = cmd.MarkFlagRequired("chat")
	return cmd
}
