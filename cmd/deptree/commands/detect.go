package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [dir...]",
		Short: "Show which package manager would resolve each directory",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			detections := c.app.Detect(args)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			failed := 0
			for _, d := range detections {
				if d.Err != nil {
					failed++
					_, _ = fmt.Fprintf(w, "%s\t%s\t-\n", d.Dir, domain.KindOf(d.Err))
					continue
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", d.Dir, d.Kind, d.Backend.Command)
			}
			if err := w.Flush(); err != nil {
				return zerr.Wrap(err, "failed to write detection results")
			}

			if failed > 0 {
				return zerr.Wrap(domain.ErrResolutionFailed,
					fmt.Sprintf("lockfile detection failed for %d directories", failed))
			}
			return nil
		},
	}
}
