package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avocadotools/avx/internal/remote"
	"github.com/avocadotools/avx/internal/target"
)

func (app *application) targetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the targets available in the project's build volume",
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := app.resolveFolder()
			if err != nil {
				return err
			}
			targets, outcome := app.explorer.ListTargetsEx(cmd.Context(), folder)
			if outcome != remote.OutcomeOK {
				return fmt.Errorf("could not enumerate targets: %s", outcomeText(outcome))
			}
			if len(targets) == 0 {
				fmt.Fprintln(os.Stderr, "Warning: no targets found in the build volume")
				return nil
			}
			for _, t := range targets {
				fmt.Println(t)
			}
			return nil
		},
	}
}

func (app *application) targetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Show or change the selected build target",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the selected target",
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := app.resolveFolder()
			if err != nil {
				return err
			}
			if t, ok := app.store.Get(folder); ok {
				fmt.Println(t)
			} else {
				fmt.Println("no target")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <name>",
		Short: "Select a target explicitly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := app.resolveFolder()
			if err != nil {
				return err
			}
			app.store.Set(folder, args[0])
			fmt.Printf("Target set to %s\n", args[0])
			return nil
		},
	})

	var name string
	selectCmd := &cobra.Command{
		Use:   "select",
		Short: "Select a target from the volume's candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := &target.Selector{
				Store:  app.store,
				Lister: app.explorer,
				Picker: &cliPicker{name: name},
			}
			chosen, err := sel.Select(cmd.Context(), app.folderOrEmpty(), app.reg.Folders())
			if err != nil {
				return err
			}
			fmt.Printf("Target set to %s\n", chosen)
			return nil
		},
	}
	selectCmd.Flags().StringVar(&name, "name", "", "target to select (required when several candidates exist)")
	cmd.AddCommand(selectCmd)

	return cmd
}

func (app *application) lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <dir>",
		Short: "List a directory inside the build volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := app.resolveFolder()
			if err != nil {
				return err
			}
			entries, outcome := app.explorer.ListDirectoryEx(cmd.Context(), folder, args[0])
			if outcome != remote.OutcomeOK {
				return fmt.Errorf("could not list %s: %s", args[0], outcomeText(outcome))
			}
			for _, e := range entries {
				kind := "-"
				if e.IsDir {
					kind = "d"
				}
				fmt.Printf("%s %4s %10d %s %s\n", kind, e.Permissions, e.SizeBytes, e.ModifiedEpoch, e.Name)
			}
			return nil
		},
	}
}

func (app *application) catCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <file>",
		Short: "Print a file from the build volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := app.resolveFolder()
			if err != nil {
				return err
			}
			content, outcome := app.explorer.ReadFileEx(cmd.Context(), folder, args[0])
			if outcome != remote.OutcomeOK {
				return fmt.Errorf("could not read %s: %s", args[0], outcomeText(outcome))
			}
			fmt.Println(content)
			return nil
		},
	}
}

func (app *application) execCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command inside the explorer container",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := app.resolveFolder()
			if err != nil {
				return err
			}
			out, err := app.explorer.Execute(cmd.Context(), folder, args...)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func (app *application) cleanupCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Stop and remove explorer containers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				app.manager.CleanupAll(context.Background())
				return nil
			}
			folder, err := app.resolveFolder()
			if err != nil {
				return err
			}
			app.manager.Cleanup(context.Background(), folder)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "tear down every managed container")
	return cmd
}

func (app *application) folderOrEmpty() string {
	if app.folder == "" {
		return ""
	}
	folder, err := app.resolveFolder()
	if err != nil {
		return ""
	}
	return folder
}

func outcomeText(outcome remote.Outcome) string {
	switch outcome {
	case remote.OutcomeNoContainer:
		return "no explorer container available (is the container tool installed and the volume provisioned?)"
	case remote.OutcomeNotFound:
		return "not found"
	default:
		return "command failed inside the container"
	}
}

// cliPicker resolves selection choices without a UI: it accepts an
// unambiguous candidate or an explicit --name, and refuses otherwise.
type cliPicker struct {
	name string
}

func (p *cliPicker) PickProject(ctx context.Context, folders []string) (string, error) {
	return "", fmt.Errorf("%d projects open; pass --folder", len(folders))
}

func (p *cliPicker) PickTarget(ctx context.Context, folder string, candidates []string, current string) (string, error) {
	if p.name != "" {
		for _, c := range candidates {
			if c == p.name {
				return c, nil
			}
		}
		return "", fmt.Errorf("target %q not available (candidates: %s)", p.name, strings.Join(candidates, ", "))
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	return "", fmt.Errorf("several targets available, pass --name: %s", strings.Join(candidates, ", "))
}
