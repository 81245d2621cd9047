package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-projtree/pkg/render"
	"github.com/mattsolo1/grove-projtree/pkg/service"
	"github.com/mattsolo1/grove-projtree/pkg/tree"
)

var showUlog = grovelogging.NewUnifiedLogger("grove-projtree.cmd.show")

func NewShowCmd(svc **service.Service) *cobra.Command {
	var (
		showStarred bool
		showJSON    bool
		showDepth   int
	)

	cmd := &cobra.Command{
		Use:   "show <project|file>",
		Short: "Print a project tree",
		Long: `Print the tree of a registered project or a fixture file.

Examples:
  ptree show learnsphere            # Registered project
  ptree show ./projects.yaml        # Fixture file
  ptree show learnsphere --starred  # Only starred entries and their folders
  ptree show learnsphere --json     # Encoded tree as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			p, err := s.Open(args[0])
			if err != nil {
				return err
			}

			if showJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(p)
			}

			if showStarred && len(tree.Starred(p.Tree)) == 0 {
				showUlog.Info("No starred entries").
					Field("project", p.Name).
					Pretty(fmt.Sprintf("No starred entries in %s", p.Name)).
					PrettyOnly().
					Log(ctx)
				return nil
			}

			return render.Tree(cmd.OutOrStdout(), p.Name, p.Tree, render.Options{
				Starred:  showStarred,
				MaxDepth: showDepth,
			})
		},
	}

	cmd.Flags().BoolVar(&showStarred, "starred", false, "Only show starred entries")
	cmd.Flags().BoolVar(&showJSON, "json", false, "Output the encoded tree as JSON")
	cmd.Flags().IntVarP(&showDepth, "depth", "d", 0, "Maximum depth to print (0 for all)")

	return cmd
}
