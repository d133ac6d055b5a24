package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prculley/gramps/place"
)

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import places from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(e *env) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				places, err := place.ReadPlacesYAML(f, e.session.Registry)
				if err != nil {
					return err
				}
				for _, p := range places {
					if err := e.store.PutPlace(p); err != nil {
						return err
					}
				}
				place.Logger().Info("places imported", "count", len(places))
				return nil
			})
		},
	}
}

func newDisplayCmd(opts *options) *cobra.Command {
	var index int
	var date string
	cmd := &cobra.Command{
		Use:   "display HANDLE...",
		Short: "Print the title of places",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var at *place.Date
			if date != "" {
				d, err := place.ParseDate(date)
				if err != nil {
					return err
				}
				at = &d
			}
			return withEnv(opts, func(e *env) error {
				for _, h := range args {
					p, err := e.store.PlaceFromHandle(h)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), e.display.Display(e.session, p, at, index))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&index, "format", -1, "format index, -1 for the default")
	cmd.Flags().StringVar(&date, "date", "", "date the title is shown for")
	return cmd
}

func newTypesCmd(opts *options) *cobra.Command {
	var menu bool
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Dump the place type registry as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(e *env) error {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if menu {
					return enc.Encode(e.session.Registry.Menu())
				}
				return enc.Encode(e.session.Registry.Snapshot())
			})
		},
	}
	cmd.Flags().BoolVar(&menu, "menu", false, "dump the type menu instead")
	return cmd
}

func newFormatsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{Use: "formats", Short: "Manage place formats"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the formats as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(e *env) error {
				return place.WriteFormatsJSON(cmd.OutOrStdout(), e.display.Formats())
			})
		},
	}, &cobra.Command{
		Use:   "load FILE",
		Short: "Add the formats of a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(e *env) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				formats, err := place.ReadFormatsYAML(f, e.session.Registry)
				if err != nil {
					return err
				}
				for _, name := range e.display.LoadFormats(formats) {
					fmt.Fprintf(cmd.ErrOrStderr(), "format %q exists, skipped\n", name)
				}
				return nil
			})
		},
	})
	return cmd
}

func newPruneCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove format rules referring to unknown types or groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(e *env) error {
				for name, n := range e.display.PruneRules(e.session.Registry) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules removed\n", name, n)
				}
				return nil
			})
		},
	}
}

func newLoadTypesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "load-types PATH",
		Short: "Register numbered place types from YAML files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(e *env) error {
				n, err := e.session.Registry.LoadTypes(args[0])
				if err != nil {
					return err
				}
				place.Logger().Info("place types loaded", "count", n)
				return nil
			})
		},
	}
}

func newMergeTypesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "merge-types OTHER.db",
		Short: "Merge the place types of another database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(e *env) error {
				other, err := place.OpenBoltStore(args[0])
				if err != nil {
					return err
				}
				defer other.Close()
				raw, err := other.Metadata(place.MetaPlaceTypes)
				if err != nil || raw == nil {
					return err
				}
				data, err := place.DecodeRegistryData(raw)
				if err != nil {
					return err
				}
				return e.session.Registry.Merge(data)
			})
		},
	}
}

func newFindCmd(opts *options) *cobra.Command {
	filter := &place.HasData{}
	cmd := &cobra.Command{
		Use:   "find",
		Short: "List places matching name and type",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(e *env) error {
				if err := filter.Prepare(e.session.Registry); err != nil {
					return err
				}
				var found []*place.Place
				err := e.store.Places(func(p *place.Place) bool {
					if filter.Match(p) {
						found = append(found, p)
					}
					return true
				})
				if err != nil {
					return err
				}
				for _, p := range found {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.Handle, e.display.Display(e.session, p, nil, -1))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&filter.Name, "name", "", "name or part of it")
	cmd.Flags().BoolVar(&filter.Regex, "regex", false, "treat --name as a regular expression")
	cmd.Flags().IntVar(&filter.Fuzzy, "fuzzy", 0, "accept names within this many edits")
	cmd.Flags().StringVar(&filter.TypeName, "type", "", "place type name")
	return cmd
}
