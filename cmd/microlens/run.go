package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/microlens/internal/microlens"
)

func newRunCmd() *cobra.Command {
	var png bool
	cmd := &cobra.Command{
		Use:   "run [config]",
		Short: "Search every frame of the source track and write the configured outputs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			microlens.PNG = png
			return microlens.Run(cmd.Context(), configArg(args))
		},
	}
	cmd.Flags().BoolVar(&png, "png", os.Getenv("PNG") != "", "write a PNG sequence instead of an animated GIF")
	return cmd
}
