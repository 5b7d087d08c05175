package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/plotbot/internal/chart"
)

type renderOptions struct {
	chatID   int64
	plotID   int
	out      string
	contour  bool
	noLabels bool
	degree   int
}

func (a *app) newRenderCmd() *cobra.Command {
	o := &renderOptions{degree: -1}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a stored plot to an image file",
		Example: `  plotbot render --chat -1001234 --plot 3 --out plot.png
  plotbot render --chat -1001234 --plot 3 --fit 2 --out fit.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStorage()
			if err != nil {
				return err
			}
			defer closeStorage(store)

			reg, err := store.LoadChat(cmd.Context(), o.chatID)
			if err != nil {
				return err
			}
			ch, err := reg.Get(o.plotID)
			if err != nil {
				return fmt.Errorf("plot %d in chat %d: %w", o.plotID, o.chatID, err)
			}

			ro := chart.RenderOptions{
				Contour:       o.contour,
				HideLabels:    o.noLabels,
				ContourGrid:   a.cfg.Render.ContourGrid,
				ContourLevels: a.cfg.Render.ContourLevels,
			}
			var img []byte
			if o.degree >= 0 {
				xy, ok := ch.(chart.XYChart)
				if !ok {
					return fmt.Errorf("cannot fit a %s plot", ch.Kind())
				}
				res, err := chart.Fit(xy, a.renderer(), o.degree, ro)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "R^2 = %.4f\ny = %s\n", res.RSquared, res.Equation)
				img = res.Image
			} else {
				img, err = chart.Render(ch, a.renderer(), ro)
				if err != nil {
					return err
				}
			}

			if err := os.WriteFile(o.out, img, 0644); err != nil {
				return fmt.Errorf("failed to write image: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", o.out, len(img))
			return nil
		},
	}

	f := cmd.Flags()
	f.Int64Var(&o.chatID, "chat", 0, "chat id")
	f.IntVar(&o.plotID, "plot", 0, "plot id within the chat")
	f.StringVarP(&o.out, "out", "o", "plot.png", "output file")
	f.BoolVar(&o.contour, "contour", false, "shade distance to the centroid")
	f.BoolVar(&o.noLabels, "no-labels", false, "hide point labels")
	f.IntVar(&o.degree, "fit", -1, "draw a fitted polynomial of this degree")
	_ = cmd.MarkFlagRequired("chat")
	_ = cmd.MarkFlagRequired("plot")
	return cmd
}
