package cli

import (
	"github.com/spf13/cobra"

	"github.com/textboard/textboard/internal/discovery"
	"github.com/textboard/textboard/internal/reader"
)

// NewTextCommand creates the text command: print the rendered records of
// one (run, tag) series.
func NewTextCommand(opts *RootOptions) *cobra.Command {
	var logdir, db string

	cmd := &cobra.Command{
		Use:           "text <run> <tag>",
		Short:         "Render the records of a text series as sanitized HTML",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, tag := args[0], args[1]

			src, closeSrc, err := openSource(logdir, db)
			if err != nil {
				return err
			}
			defer closeSrc()

			ix := discovery.New(src, newLogger(opts))
			records, err := reader.New(src, ix).Records(cmd.Context(), run, tag)
			if err != nil {
				if reader.IsNotFound(err) {
					return WrapExitError(ExitFailure, "series not found", err)
				}
				return WrapExitError(ExitCommandError, "read failed", err)
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if opts.Format == "json" {
				payload := make([]any, len(records))
				for i, rec := range records {
					payload[i] = map[string]any{
						"step":      rec.Step,
						"wall_time": rec.WallTime,
						"text":      rec.HTML,
					}
				}
				return out.PrintJSON(payload)
			}
			for _, rec := range records {
				out.Printf("step %d (wall_time %v):\n%s\n\n", rec.Step, rec.WallTime, rec.HTML)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logdir, "logdir", "", "root directory of recorded runs")
	cmd.Flags().StringVar(&db, "db", "", "path to a sqlite event store")
	return cmd
}
