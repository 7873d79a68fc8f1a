package cli

import (
	"os"

	"github.com/textboard/textboard/internal/source"
	"github.com/textboard/textboard/internal/store"
)

// openSource resolves the --logdir/--db flag pair into a Source. The
// returned closer is a no-op for logdir sources.
func openSource(logdir, db string) (source.Source, func() error, error) {
	noop := func() error { return nil }
	switch {
	case logdir != "" && db != "":
		return nil, nil, NewExitError(ExitCommandError, "--logdir and --db are mutually exclusive")
	case logdir != "":
		src, err := source.OpenLogdir(logdir)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "open logdir", err)
		}
		return src, noop, nil
	case db != "":
		if _, err := os.Stat(db); err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "database not found", err)
		}
		st, err := store.Open(db)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "open database", err)
		}
		return st, st.Close, nil
	default:
		return nil, nil, NewExitError(ExitCommandError, "one of --logdir or --db is required")
	}
}
