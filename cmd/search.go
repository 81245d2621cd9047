package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-projtree/pkg/render"
	"github.com/mattsolo1/grove-projtree/pkg/service"
)

var searchUlog = grovelogging.NewUnifiedLogger("grove-projtree.cmd.search")

func NewSearchCmd(svc **service.Service) *cobra.Command {
	var (
		searchGlob  bool
		searchDepth int
	)

	cmd := &cobra.Command{
		Use:   "search <project|file> <query>",
		Short: "Filter top-level entries by name",
		Long: `List the top-level entries whose name contains the query, ignoring
case. Only top-level names are matched; matching entries are printed with
their contents.

Examples:
  ptree search learnsphere dev          # Substring match
  ptree search learnsphere "*.md" --glob # Glob match`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			p, err := s.Open(args[0])
			if err != nil {
				return err
			}

			query := args[1]
			var opts []service.SearchOption
			if searchGlob {
				opts = append(opts, service.UseGlob())
			}

			results, err := s.Search(p, query, opts...)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				searchUlog.Info("No results found").
					Field("project", p.Name).
					Field("query", query).
					Pretty("No results found").
					PrettyOnly().
					Log(ctx)
				return nil
			}

			searchUlog.Info("Search results").
				Field("project", p.Name).
				Field("query", query).
				Field("result_count", len(results)).
				Pretty(fmt.Sprintf("Found %d results:\n", len(results))).
				PrettyOnly().
				Log(ctx)

			return render.Tree(cmd.OutOrStdout(), p.Name, results, render.Options{MaxDepth: searchDepth})
		},
	}

	cmd.Flags().BoolVar(&searchGlob, "glob", false, "Treat the query as a glob pattern")
	cmd.Flags().IntVarP(&searchDepth, "depth", "d", 0, "Maximum depth to print (0 for all)")

	return cmd
}
