package main

import (
	"errors"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/prculley/gramps/place"
)

type options struct {
	dbPath     string
	configPath string
}

// env is what every command works with: an open store, its session and a
// displayer loaded with the stored formats.
type env struct {
	store   *place.BoltStore
	session *place.Session
	display *place.Displayer
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "placefmt",
		Short:         "Place title formatting over a place database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db", envOr("PLACEFMT_DB", "places.db"), "place database file")
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("PLACEFMT_CONFIG"), "display preferences (YAML)")

	root.AddCommand(
		newImportCmd(opts),
		newDisplayCmd(opts),
		newTypesCmd(opts),
		newFormatsCmd(opts),
		newPruneCmd(opts),
		newLoadTypesCmd(opts),
		newMergeTypesCmd(opts),
		newFindCmd(opts),
	)
	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// withEnv opens the database, runs fn and stores registry and formats back.
func withEnv(opts *options, fn func(e *env) error) (err error) {
	cfg, err := place.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	store, err := place.OpenBoltStore(opts.dbPath)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, store.Close()) }()

	session, err := place.OpenSession(place.NewRegistry(), store)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, session.Close()) }()

	d := place.NewDisplayer(cfg)
	dropped, err := session.LoadFormats(d)
	if err != nil {
		return err
	}
	dropped = slices.DeleteFunc(dropped, func(name string) bool { return name == place.DefaultFormat().Name })
	if len(dropped) > 0 {
		place.Logger().Warn("stored formats shadowed by built-in ones", "formats", dropped)
	}
	if err := fn(&env{store: store, session: session, display: d}); err != nil {
		return err
	}
	return session.SaveFormats(d)
}
