package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/metcalfc/shelf/internal/catalog"
	"github.com/metcalfc/shelf/internal/ingest"
	"github.com/spf13/cobra"
)

var errAmbiguousID = errors.New("ambiguous book id")

// findBook resolves a full book ID or a unique prefix of one.
func (a *app) findBook(ref string) (catalog.Book, error) {
	if b, err := a.catalog.Get(ref); err == nil {
		return b, nil
	}
	var found []catalog.Book
	for _, b := range a.catalog.List() {
		if strings.HasPrefix(b.ID, ref) {
			found = append(found, b)
		}
	}
	switch len(found) {
	case 0:
		return catalog.Book{}, fmt.Errorf("%w: %s", catalog.ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return catalog.Book{}, fmt.Errorf("%w: %s matches %d books", errAmbiguousID, ref, len(found))
	}
}

// printBooks lists books, marking the current user's favorites and progress.
func (a *app) printBooks(cmd *cobra.Command, books []catalog.Book) {
	out := cmd.OutOrStdout()
	if len(books) == 0 {
		fmt.Fprintln(out, dimStyle.Render("No books found."))
		return
	}
	u, _ := a.store.Current()
	for _, b := range books {
		fav, progress := false, 0
		if u != nil {
			fav = slices.Contains(u.Favorites, b.ID)
			progress = u.ReadingProgress[b.ID]
		}
		fmt.Fprintln(out, bookLine(b, fav, progress))
	}
}

func newAddCmd(a *app) *cobra.Command {
	var up ingest.Upload
	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Add a document to the catalog (admin)",
		Long: `Extract the text of a PDF, EPUB, Markdown or plain text file, split it into
chapters and add it to the catalog. Title and author come from the document
metadata unless given as flags; a cover is generated unless --cover is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.requireAdmin()
			if err != nil {
				return err
			}
			up.Path = args[0]
			book, err := a.ingester().Ingest(cmd.Context(), u, up)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("Added"), bookLine(book, false, 0))
			return nil
		},
	}
	cmd.Flags().StringVar(&up.Title, "title", "", "Book title (default: from metadata or file name)")
	cmd.Flags().StringVar(&up.Author, "author", "", "Book author (default: from metadata)")
	cmd.Flags().StringVar(&up.Description, "description", "", "Short description")
	cmd.Flags().StringVar(&up.CoverURL, "cover", "", "Cover image URL (default: generated)")
	cmd.Flags().StringSliceVarP(&up.Tags, "tag", "t", nil, "Tag, repeatable or comma separated")
	cmd.Flags().BoolVar(&up.Force, "force", false, "Add even if the same file is already in the catalog")
	return cmd
}

func newSegmentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "segment <file>",
		Short: "Show how a document would be split into chapters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.ingester().Prepare(cmd.Context(), ingest.Upload{Path: args[0]})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			how := string(d.Strategy)
			if d.Pattern != "" {
				how += " (" + d.Pattern + ")"
			}
			fmt.Fprintf(out, "%s by %s\n", titleStyle.Render(d.Book.Title), authorStyle.Render(d.Book.Author))
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d pages, %d chapters, split by %s", d.Pages, len(d.Book.Content), how)))
			for i, ch := range d.Book.Content {
				fmt.Fprintf(out, "%s%s %s\n",
					dimStyle.Render(fmt.Sprintf("%3d. ", i+1)),
					preview(ch, 60),
					dimStyle.Render(fmt.Sprintf("[%d chars]", len([]rune(ch)))),
				)
			}
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a book and its comments (admin)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireAdmin(); err != nil {
				return err
			}
			b, err := a.findBook(args[0])
			if err != nil {
				return err
			}
			if err := a.catalog.Remove(b.ID); err != nil {
				return err
			}
			if err := a.store.ForgetBook(b.ID); err != nil {
				a.logger.Warn("could not clear reading state", "book", b.ID, "error", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("Removed"), b.Title)
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add sample books to an empty catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.catalog.SeedSamples()
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("Catalog is not empty; nothing added."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d sample books\n", okStyle.Render("Added"), n)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every book in the catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printBooks(cmd, a.catalog.List())
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find books by title, author, description or tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printBooks(cmd, a.catalog.Search(strings.Join(args, " ")))
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a book's details and chapter list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.findBook(args[0])
			if err != nil {
				return err
			}
			fav, progress := false, 0
			if u, err := a.store.Current(); err == nil {
				fav = slices.Contains(u.Favorites, b.ID)
				progress = u.ReadingProgress[b.ID]
			}
			fmt.Fprint(cmd.OutOrStdout(), bookDetail(b, fav, progress))
			return nil
		},
	}
}
