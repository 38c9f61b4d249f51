package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/library"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the books in your library",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.storeClient()
			if err != nil {
				return err
			}
			books, err := store.ListBooks(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, books)
			}
			out := cmd.OutOrStdout()
			if len(books) == 0 {
				fmt.Fprintln(out, "Your library is empty. Try `folio search` to find books to add.")
				return nil
			}
			fmt.Fprintln(out, renderBookList(books))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <book-id>",
		Short: "Show a book and its annotations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.storeClient()
			if err != nil {
				return err
			}
			book, err := store.GetBook(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, library.ErrNotFound) {
					return fmt.Errorf("no book with id %s", args[0])
				}
				return err
			}
			if asJSON {
				return writeJSON(cmd, book)
			}
			writeBookDetail(cmd.OutOrStdout(), book)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of formatted text")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		title     string
		author    string
		isbn      string
		published string
		pages     int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to your library by hand",
		Long:  "Add a book without going through catalog search. Title and author are required; everything else is optional.",
		RunE: func(cmd *cobra.Command, args []string) error {
			title = strings.TrimSpace(title)
			author = strings.TrimSpace(author)
			if title == "" || author == "" {
				return errors.New("title and author must not be empty")
			}
			store, err := ctx.storeClient()
			if err != nil {
				return err
			}
			book, err := store.CreateBook(cmd.Context(), library.Candidate{
				Title:         title,
				Author:        author,
				ISBN:          strings.TrimSpace(isbn),
				PublishedDate: strings.TrimSpace(published),
				PageCount:     pages,
			})
			if err != nil {
				return err
			}
			ctx.logger().Info("book added", "id", book.ID, "title", book.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q by %s (%s)\n", book.Title, book.Author, book.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Book title (required)")
	cmd.Flags().StringVar(&author, "author", "", "Book author (required)")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN-13")
	cmd.Flags().StringVar(&published, "published", "", "Publication date")
	cmd.Flags().IntVar(&pages, "pages", 0, "Page count")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	return cmd
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var (
		title  string
		author string
	)

	cmd := &cobra.Command{
		Use:   "edit <book-id>",
		Short: "Change a book's title or author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title = strings.TrimSpace(title)
			author = strings.TrimSpace(author)
			if title == "" && author == "" {
				return errors.New("pass --title or --author (or both)")
			}
			store, err := ctx.storeClient()
			if err != nil {
				return err
			}
			// The backend replaces both fields, so fill the missing one
			// from the current record.
			current, err := store.GetBook(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, library.ErrNotFound) {
					return fmt.Errorf("no book with id %s", args[0])
				}
				return err
			}
			if title == "" {
				title = current.Title
			}
			if author == "" {
				author = current.Author
			}
			book, err := store.UpdateBook(cmd.Context(), args[0], title, author)
			if err != nil {
				return err
			}
			ctx.logger().Info("book updated", "id", args[0], "title", book.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q by %s\n", book.Title, book.Author)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&author, "author", "", "New author")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <book-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a book and its annotations",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.storeClient()
			if err != nil {
				return err
			}
			book, err := store.GetBook(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, library.ErrNotFound) {
					return fmt.Errorf("no book with id %s", args[0])
				}
				return err
			}
			if !yes {
				ok, err := confirmDelete(cmd, fmt.Sprintf("Delete %q and its annotations?", book.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			if err := store.DeleteBook(cmd.Context(), args[0]); err != nil {
				return err
			}
			ctx.logger().Info("book removed", "id", args[0], "title", book.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", book.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
