package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-projtree/pkg/service"
)

var projectUlog = grovelogging.NewUnifiedLogger("grove-projtree.cmd.project")

func NewProjectCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Short:   "Manage registered projects",
		Aliases: []string{"projects"},
		Long: `Register fixture files under a name so other commands can refer to them.

Examples:
  ptree project add learnsphere ./projects.yaml
  ptree project list
  ptree project remove learnsphere`,
	}

	cmd.AddCommand(newProjectAddCmd(svc))
	cmd.AddCommand(newProjectListCmd(svc))
	cmd.AddCommand(newProjectRemoveCmd(svc))

	return cmd
}

func newProjectAddCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <file>",
		Short: "Register a fixture file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			entry, err := s.Register(args[0], args[1])
			if err != nil {
				return err
			}

			projectUlog.Success("Registered project").
				Field("project", entry.Name).
				Field("id", entry.ID).
				Field("source", entry.Source).
				Pretty(fmt.Sprintf("Registered %s -> %s", entry.Name, entry.Source)).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}
}

func newProjectListCmd(svc **service.Service) *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List registered projects",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			entries, err := s.Registry.List()
			if err != nil {
				return err
			}

			if listJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(entries)
			}

			if len(entries) == 0 {
				projectUlog.Info("No projects registered").
					Pretty("No projects registered. Use 'ptree project add <name> <file>'.").
					PrettyOnly().
					Log(ctx)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSOURCE\tLAST USED")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Source, e.LastUsed.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	return cmd
}

func newProjectRemoveCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Short:   "Unregister a project",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			if err := s.Registry.Remove(args[0]); err != nil {
				return fmt.Errorf("remove %s: %w", args[0], err)
			}

			projectUlog.Success("Removed project").
				Field("project", args[0]).
				Pretty(fmt.Sprintf("Removed %s", args[0])).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}
}
