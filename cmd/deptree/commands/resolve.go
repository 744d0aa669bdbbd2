package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/deptree/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [path...]",
		Short: "Resolve the dependency tree of each manifest or project directory",
		Long: "Resolve installs each project's locked dependencies with its package manager, " +
			"records the resulting tree and removes the installed files again. " +
			"Without arguments the current directory is resolved.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.ResolveOptions{}
			opts.ConfigPath, _ = cmd.Flags().GetString("config")
			opts.Output, _ = cmd.Flags().GetString("output")

			if cmd.Flags().Changed("jobs") {
				jobs, _ := cmd.Flags().GetInt("jobs")
				opts.MaxConcurrency = &jobs
			}
			if cmd.Flags().Changed("timeout") {
				timeout, _ := cmd.Flags().GetDuration("timeout")
				opts.TimeoutPerManifest = &timeout
			}
			if cmd.Flags().Changed("fail-fast") {
				failFast, _ := cmd.Flags().GetBool("fail-fast")
				opts.FailFast = &failFast
			}

			return c.app.Resolve(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "Maximum number of manifests resolved in parallel (0 uses all CPUs)")
	cmd.Flags().Duration("timeout", 0, "Timeout per manifest, for example 5m (0 disables it)")
	cmd.Flags().Bool("fail-fast", false, "Stop resolving after the first failed manifest")
	cmd.Flags().StringP("output", "o", "-", "Write the JSON report to this file instead of stdout")
	cmd.Flags().StringP("config", "c", "", "Path to a deptree.yaml file (default: discovered upwards)")
	return cmd
}
