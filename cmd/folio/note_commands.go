package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"folio/internal/library"
)

func newNoteCommand(ctx *commandContext) *cobra.Command {
	noteCmd := &cobra.Command{
		Use:   "note",
		Short: "Manage annotations on your books",
	}

	noteCmd.AddCommand(newNoteListCommand(ctx))
	noteCmd.AddCommand(newNoteAddCommand(ctx))
	noteCmd.AddCommand(newNoteEditCommand(ctx))
	noteCmd.AddCommand(newNoteRemoveCommand(ctx))

	return noteCmd
}

func newNoteListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list <book-id>",
		Short: "List a book's annotations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.storeClient()
			if err != nil {
				return err
			}
			annotations, err := store.ListAnnotations(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, library.ErrNotFound) {
					return fmt.Errorf("no book with id %s", args[0])
				}
				return err
			}
			if asJSON {
				return writeJSON(cmd, annotations)
			}
			out := cmd.OutOrStdout()
			if len(annotations) == 0 {
				fmt.Fprintln(out, "No annotations yet.")
				return nil
			}
			fmt.Fprintln(out, renderAnnotationList(annotations))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newNoteAddCommand(ctx *commandContext) *cobra.Command {
	var (
		text    string
		page    string
		typName string
	)

	cmd := &cobra.Command{
		Use:   "add <book-id>",
		Short: "Attach an annotation to a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text = strings.TrimSpace(text)
			if text == "" {
				return errors.New("annotation text must not be empty")
			}
			typ, err := library.ParseAnnotationType(typName)
			if err != nil {
				return err
			}
			store, err := ctx.storeClient()
			if err != nil {
				return err
			}
			created, err := store.CreateAnnotation(cmd.Context(), args[0], library.Annotation{
				ID:        uuid.NewString(),
				Text:      text,
				Page:      strings.TrimSpace(page),
				Type:      typ,
				Timestamp: time.Now(),
			})
			if err != nil {
				if errors.Is(err, library.ErrNotFound) {
					return fmt.Errorf("no book with id %s", args[0])
				}
				return err
			}
			ctx.logger().Info("annotation added", "book", args[0], "id", created.ID, "type", string(created.Type))
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s annotation %s\n", created.Type, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Annotation text (required)")
	cmd.Flags().StringVar(&page, "page", "", "Page reference")
	cmd.Flags().StringVar(&typName, "type", "note", "Annotation type: quote, note, or insight")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newNoteEditCommand(ctx *commandContext) *cobra.Command {
	var (
		text string
		page string
	)

	cmd := &cobra.Command{
		Use:   "edit <note-id>",
		Short: "Rewrite an annotation's text and page",
		Long: "Rewrite an annotation. The backend replaces both text and page, so an " +
			"omitted --page clears the page reference. Type and creation time never change.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text = strings.TrimSpace(text)
			if text == "" {
				return errors.New("annotation text must not be empty")
			}
			store, err := ctx.storeClient()
			if err != nil {
				return err
			}
			updated, err := store.UpdateAnnotation(cmd.Context(), args[0], text, strings.TrimSpace(page))
			if err != nil {
				if errors.Is(err, library.ErrNotFound) {
					return fmt.Errorf("no annotation with id %s", args[0])
				}
				return err
			}
			ctx.logger().Info("annotation updated", "id", updated.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated annotation %s\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New annotation text (required)")
	cmd.Flags().StringVar(&page, "page", "", "New page reference")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newNoteRemoveCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <note-id>",
		Aliases: []string{"remove"},
		Short:   "Delete an annotation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := confirmDelete(cmd, fmt.Sprintf("Delete annotation %s?", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			store, err := ctx.storeClient()
			if err != nil {
				return err
			}
			if err := store.DeleteAnnotation(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, library.ErrNotFound) {
					return fmt.Errorf("no annotation with id %s", args[0])
				}
				return err
			}
			ctx.logger().Info("annotation removed", "id", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted annotation %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
