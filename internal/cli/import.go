package cli

import (
	"github.com/spf13/cobra"

	"github.com/textboard/textboard/internal/discovery"
	"github.com/textboard/textboard/internal/source"
	"github.com/textboard/textboard/internal/store"
)

// NewImportCommand creates the import command: ingest a logdir into a
// sqlite event store.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:           "import <logdir>",
		Short:         "Ingest a log directory into a sqlite event store",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := source.OpenLogdir(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "open logdir", err)
			}

			st, err := store.Open(db)
			if err != nil {
				return WrapExitError(ExitCommandError, "open database", err)
			}
			defer st.Close()

			if err := st.ImportFrom(cmd.Context(), src, discovery.PluginName, "tensors.json"); err != nil {
				return WrapExitError(ExitCommandError, "import failed", err)
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if opts.Format == "json" {
				return out.PrintJSON(map[string]any{"imported": true, "db": db})
			}
			out.Printf("imported %s into %s\n", args[0], db)
			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "path to the sqlite event store to create or append to")
	cmd.MarkFlagRequired("db")
	return cmd
}
