package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/microlens/internal/microlens"
)

func newFrameCmd() *cobra.Command {
	var (
		index int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "frame [config]",
		Short: "Search a single frame and print its per-level statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := microlens.LoadConfig(configArg(args))
			if err != nil {
				return err
			}
			cfg.Output.GIF, cfg.Output.PNGPrefix = "", ""
			sim, err := microlens.NewSimulation(cfg)
			if err != nil {
				return err
			}
			if out != "" {
				sim.Renderer = &microlens.Renderer{
					Window:    sim.Window,
					Size:      cfg.Output.ImageSize,
					Lenses:    sim.Field.Lenses(),
					DebugGrid: cfg.Output.DebugGrid || microlens.Debug,
				}
			}

			fr, err := sim.Frame(index, microlens.NewLevelStats())
			if err != nil {
				return err
			}
			if out != "" {
				if err := microlens.SavePNG(fr.Image, out); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "level\tarea\thit area\tcalls\t\n")
			for _, ls := range fr.Levels {
				fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%d\t\n", ls.Level, ls.Area, ls.HitArea, ls.Calls)
			}
			fmt.Fprintf(w, "total\t%.6f\t%.6f\t%d\t\n", fr.Area, fr.HitArea, fr.Calls)
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "source (%.4f, %.4f) r=%g: %d terminals, magnification %.4f, %s\n",
				fr.Source.Origin.X, fr.Source.Origin.Y, fr.Source.Radius, len(fr.Terminals), fr.Magnification, fr.Elapsed)
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "frame index along the source track")
	cmd.Flags().StringVar(&out, "out", "", "write the rendered frame to this PNG")
	return cmd
}
