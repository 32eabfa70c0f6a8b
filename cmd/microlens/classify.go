package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/microlens/internal/microlens"
)

func newClassifyCmd() *cobra.Command {
	var (
		source []float64
		points []float64
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a source-plane polygon against a source disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(source) != 3 {
				return fmt.Errorf("--source wants x,y,r, got %d values", len(source))
			}
			if len(points)%2 != 0 || len(points) < 6 {
				return fmt.Errorf("--points wants at least three x,y pairs, got %d values", len(points))
			}
			src, err := microlens.NewSource(microlens.Pt(source[0], source[1]), source[2])
			if err != nil {
				return err
			}
			poly := make([]microlens.Point, 0, len(points)/2)
			for i := 0; i < len(points); i += 2 {
				poly = append(poly, microlens.Pt(points[i], points[i+1]))
			}
			c := microlens.Classify(poly, src)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (winding number %d)\n", c, microlens.WindingNumber(src.Origin, poly))
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&source, "source", nil, "source disk as x,y,r")
	cmd.Flags().Float64SliceVar(&points, "points", nil, "polygon vertices as x1,y1,x2,y2,...")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("points")
	return cmd
}
