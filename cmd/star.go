package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-projtree/pkg/render"
	"github.com/mattsolo1/grove-projtree/pkg/service"
	"github.com/mattsolo1/grove-projtree/pkg/tree"
)

var starUlog = grovelogging.NewUnifiedLogger("grove-projtree.cmd.star")

func NewStarCmd(svc **service.Service) *cobra.Command {
	var (
		starWrite  bool
		starOutput string
		starQuiet  bool
	)

	cmd := &cobra.Command{
		Use:   "star <project|file> <name>...",
		Short: "Toggle the star on a tree entry",
		Long: `Toggle the starred flag of the entry addressed by a path of names.

The path starts at the top level of the tree, one name per level. A single
argument containing "/" is split into names.

Examples:
  ptree star learnsphere "Web Dev"                        # Top-level folder
  ptree star learnsphere "AI Projects" "Neural Network"   # Nested folder
  ptree star learnsphere "AI Projects/Neural Network/src" # Same, as one path
  ptree star ./projects.yaml docs --write                 # Save the change
  ptree star ./projects.yaml docs -o starred.json         # Save elsewhere`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			p, err := s.Open(args[0])
			if err != nil {
				return err
			}

			path := parsePath(args[1:])
			updated, err := s.ToggleStar(p, path)
			if err != nil {
				return fmt.Errorf("toggle star: %w", err)
			}

			node, _ := tree.Find(updated.Tree, path)
			state := "Unstarred"
			if node.Starred() {
				state = "Starred"
			}
			starUlog.Info(state).
				Field("project", updated.Name).
				Field("path", tree.FormatPath(path)).
				Field("starred", node.Starred()).
				Pretty(fmt.Sprintf("%s %s", state, tree.FormatPath(path))).
				PrettyOnly().
				Log(ctx)

			if starWrite || starOutput != "" {
				if err := s.Save(updated, starOutput); err != nil {
					return err
				}
			}

			if starQuiet {
				return nil
			}
			return render.Tree(cmd.OutOrStdout(), updated.Name, updated.Tree, render.Options{})
		},
	}

	cmd.Flags().BoolVarP(&starWrite, "write", "w", false, "Write the result back to the fixture")
	cmd.Flags().StringVarP(&starOutput, "output", "o", "", "Write the result to this file instead")
	cmd.Flags().BoolVarP(&starQuiet, "quiet", "q", false, "Do not print the resulting tree")

	return cmd
}
