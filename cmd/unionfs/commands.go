package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alur/WinUnionFS/internal/configuration"
	"github.com/alur/WinUnionFS/internal/folder"
	"github.com/alur/WinUnionFS/internal/namespace"
	"github.com/alur/WinUnionFS/internal/pidl"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func pathArg(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}

func enumFlags(all bool) folder.EnumFlags {
	flags := folder.EnumDefault
	if all {
		flags |= folder.EnumIncludeHidden
	}

	return flags
}

func newGroupsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the groups and their backing folders",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s := app.openSession()
			defer s.Close()

			for i := 0; ; i++ {
				g, ok := s.registry.FindIndex(i)
				if !ok {
					break
				}
				fmt.Fprintf(app.out, "%s\t%s\n", g.Name, strings.Join(g.Paths(), ", "))
			}

			return nil
		},
	}
}

func newGroupCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Edit the stored groups",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> <folder>...",
			Short: "Store a group, replacing one of the same name",
			Args:  cobra.MinimumNArgs(2), //nolint:mnd
			RunE: func(_ *cobra.Command, args []string) error {
				def := configuration.GroupDefinition{Name: args[0]}

				for _, path := range args[1:] {
					abs, err := filepath.Abs(path)
					if err != nil {
						return fmt.Errorf("(group-add) %w", err)
					}
					def.Paths = append(def.Paths, abs)
				}

				if err := app.store.Save(def); err != nil {
					return fmt.Errorf("(group-add) %w", err)
				}

				slog.Info("Stored group", "group", def.Name, "folders", len(def.Paths))

				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a stored group",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				if err := app.store.Remove(args[0]); err != nil {
					return fmt.Errorf("(group-remove) %w", err)
				}

				slog.Info("Removed group", "group", args[0])

				return nil
			},
		},
	)

	return cmd
}

func newLsCommand(app *App) *cobra.Command {
	var long, all, sorted bool

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List a merged folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s := app.openSession()
			defer s.Close()

			f, err := s.Open(pathArg(args))
			if err != nil {
				return err
			}
			defer f.Close()

			items, err := listAll(f, enumFlags(all))
			if err != nil {
				return err
			}
			if sorted {
				namespace.SortIDs(items)
			}

			for _, item := range items {
				if long {
					app.printLong(f, item)

					continue
				}
				fmt.Fprintln(app.out, entryName(item))
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "show details and delegate index")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include hidden items")
	cmd.Flags().BoolVarP(&sorted, "sort", "s", false, "sort by name instead of backing order")

	return cmd
}

func entryName(item pidl.ID) string {
	if pidl.GetAttributes(item).IsFolder() {
		return pidl.Name(item) + pidl.Separator
	}

	return pidl.Name(item)
}

func (app *App) printLong(f *namespace.Folder, item pidl.ID) {
	if f.Level() == namespace.LevelRoot {
		fmt.Fprintf(app.out, "d %10s %-16s %3s %s\n", "-", "-", "-", entryName(item))

		return
	}

	details, err := f.Details(item)
	if err != nil {
		slog.Warn("Failure reading details (was skipped)",
			"path", displayPath(f),
			"name", pidl.Name(item),
			"err", err,
		)

		return
	}

	kind, size := "-", humanize.Bytes(uint64(max(details.Size, 0)))
	if details.Folder {
		kind, size = "d", "-"
	}

	fmt.Fprintf(app.out, "%s %10s %-16s @%-2d %s\n",
		kind, size, humanize.Time(details.Modified), pidl.Delegate(item), entryName(item))
}

func newTreeCommand(app *App) *cobra.Command {
	var depth int
	var all bool

	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Print the merged tree below a folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s := app.openSession()
			defer s.Close()

			f, err := s.Open(pathArg(args))
			if err != nil {
				return err
			}
			defer f.Close()

			fmt.Fprintln(app.out, displayPath(f))

			return app.printTree(f, "", depth, enumFlags(all))
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "maximum depth (0 for unlimited)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include hidden items")

	return cmd
}

func (app *App) printTree(f *namespace.Folder, prefix string, depth int, flags folder.EnumFlags) error {
	items, err := listAll(f, flags)
	if err != nil {
		return err
	}

	for i, item := range items {
		branch, indent := "├── ", "│   "
		if i == len(items)-1 {
			branch, indent = "└── ", "    "
		}

		fmt.Fprintf(app.out, "%s%s%s\n", prefix, branch, entryName(item))

		if !pidl.GetAttributes(item).IsFolder() || depth == 1 {
			continue
		}

		child, err := f.BindToObject(item)
		if err != nil {
			slog.Warn("Failure descending into folder (was skipped)",
				"path", displayPath(f),
				"name", pidl.Name(item),
				"err", err,
			)

			continue
		}

		err = app.printTree(child, prefix+indent, max(depth-1, 0), flags)
		child.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

func newCatCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>",
		Short: "Print a file of a merged folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s := app.openSession()
			defer s.Close()

			parent, child, err := s.OpenParent(args[0])
			if err != nil {
				return err
			}
			defer parent.Close()

			file, err := parent.OpenItem(child)
			if err != nil {
				return err
			}
			defer file.Close()

			if _, err := io.Copy(app.out, file); err != nil {
				return fmt.Errorf("(cat) %w", err)
			}

			return nil
		},
	}
}

func newInspectCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <path>",
		Short: "Show the identifier of a namespace path and where it resolves",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s := app.openSession()
			defer s.Close()

			rel, attrs, err := s.parse(pathArg(args))
			if err != nil {
				return err
			}
			id := pidl.Concatenate(namespace.Anchor(), rel)

			fmt.Fprintf(app.out, "path:        /%s\n", pidl.GetFullPath(id, nil))
			fmt.Fprintf(app.out, "attributes:  %s\n", attrs)
			fmt.Fprintf(app.out, "bytes:       %d\n", pidl.Size(id))
			fmt.Fprintf(app.out, "fingerprint: %s\n", pidl.Fingerprint(id))
			fmt.Fprintln(app.out, "nodes:")
			for i, item := range pidl.Items(id) {
				fmt.Fprintf(app.out, "  %d %q delegate=%d attributes=%s\n", i, item.Name, item.Delegate, item.Attributes)
			}

			if !attrs.IsFolder() {
				return nil
			}

			f, err := s.root.BindToObject(rel)
			if err != nil {
				return err
			}
			defer f.Close()

			fmt.Fprintf(app.out, "level:       %s\n", f.Level())
			fmt.Fprintln(app.out, "targets:")
			for i, target := range f.Targets() {
				fmt.Fprintf(app.out, "  @%d %s\n", i, target)
			}

			return nil
		},
	}
}
