package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/textboard/textboard/internal/discovery"
)

// NewTagsCommand creates the tags command: print the run-to-tag index.
func NewTagsCommand(opts *RootOptions) *cobra.Command {
	var logdir, db string

	cmd := &cobra.Command{
		Use:           "tags",
		Short:         "List runs and the text tags they contain",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSrc, err := openSource(logdir, db)
			if err != nil {
				return err
			}
			defer closeSrc()

			ix := discovery.New(src, newLogger(opts))
			index, err := ix.RunToTags(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "discovery failed", err)
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if opts.Format == "json" {
				return out.PrintJSON(index)
			}
			if len(index) == 0 {
				out.Printf("no text data\n")
				return nil
			}
			for _, run := range sortedKeys(index) {
				out.Printf("%s:\n", run)
				for _, tag := range index[run] {
					out.Printf("  %s\n", tag)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logdir, "logdir", "", "root directory of recorded runs")
	cmd.Flags().StringVar(&db, "db", "", "path to a sqlite event store")
	return cmd
}

func sortedKeys(index map[string][]string) []string {
	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
