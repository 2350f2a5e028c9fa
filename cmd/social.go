package cmd

import (
	"fmt"
	"strings"

	"github.com/metcalfc/shelf/internal/catalog"
	"github.com/spf13/cobra"
)

func newFavCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fav <id>",
		Short: "Add or remove a book from your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			b, err := a.findBook(args[0])
			if err != nil {
				return err
			}
			added, err := a.store.ToggleFavorite(u.ID, b.ID)
			if err != nil {
				return err
			}
			verb := "Removed from favorites:"
			if added {
				verb = "Added to favorites:"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render(verb), b.Title)
			return nil
		},
	}
}

func newFavoritesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List your favorite books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			var books []catalog.Book
			for _, id := range u.Favorites {
				if b, err := a.catalog.Get(id); err == nil {
					books = append(books, b)
				}
			}
			a.printBooks(cmd, books)
			return nil
		},
	}
}

func newCommentCmd(a *app) *cobra.Command {
	var line int
	cmd := &cobra.Command{
		Use:   "comment <id> <text>...",
		Short: "Comment on a book",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			b, err := a.findBook(args[0])
			if err != nil {
				return err
			}
			c, err := a.catalog.AddComment(catalog.Comment{
				BookID:   b.ID,
				UserID:   u.ID,
				Username: u.Username,
				Content:  strings.Join(args[1:], " "),
				Line:     line,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), commentLine(c))
			return nil
		},
	}
	cmd.Flags().IntVarP(&line, "line", "l", 0, "Line the comment refers to")
	return cmd
}

func newCommentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comments [id]",
		Short: "Show comments on a book, or every comment (admin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var comments []catalog.Comment
			if len(args) == 1 {
				b, err := a.findBook(args[0])
				if err != nil {
					return err
				}
				comments = a.catalog.Comments(b.ID)
			} else {
				if _, err := a.requireAdmin(); err != nil {
					return err
				}
				comments = a.catalog.AllComments()
			}

			out := cmd.OutOrStdout()
			if len(comments) == 0 {
				fmt.Fprintln(out, dimStyle.Render("No comments yet."))
				return nil
			}
			for _, c := range comments {
				fmt.Fprintln(out, commentLine(c))
			}
			return nil
		},
	}
}
