package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		asJSON   bool
		addIndex int
	)

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search the book catalog",
		Long: "Search the external book catalog. Pass --add N to add the Nth result " +
			"to your library in the same invocation.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.catalogClient()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			results, err := cat.Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No catalog matches for %q.\n", query)
				return nil
			}

			if addIndex > 0 {
				if addIndex > len(results) {
					return fmt.Errorf("--add %d is out of range; the search returned %d results", addIndex, len(results))
				}
				store, err := ctx.storeClient()
				if err != nil {
					return err
				}
				book, err := store.CreateBook(cmd.Context(), results[addIndex-1])
				if err != nil {
					return err
				}
				ctx.logger().Info("book added", "id", book.ID, "title", book.Title, "query", query)
				fmt.Fprintf(out, "Added %q by %s (%s)\n", book.Title, book.Author, book.ID)
				return nil
			}

			if asJSON {
				return writeJSON(cmd, results)
			}
			fmt.Fprintln(out, renderCandidateList(results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	cmd.Flags().IntVar(&addIndex, "add", 0, "Add the Nth result to your library")
	return cmd
}
