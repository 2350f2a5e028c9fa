package cmd

import (
	"errors"
	"fmt"

	"github.com/metcalfc/shelf/internal/reader"
	"github.com/spf13/cobra"
)

func newReadCmd(a *app) *cobra.Command {
	var chapter int
	var fresh bool
	cmd := &cobra.Command{
		Use:   "read <id>",
		Short: "Read a book chapter by chapter",
		Long: `Open a book in the reader. Logged-in users resume where they left off and
have their progress saved as they turn chapters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.read == nil {
				return errors.New("no reader available in this build")
			}
			b, err := a.findBook(args[0])
			if err != nil {
				return err
			}

			s := &Session{Book: b}
			start := 0
			if u, err := a.store.Current(); err == nil {
				if !fresh {
					start = reader.ChapterForPercent(a.store.Progress(u.ID, b.ID), len(b.Content))
				}
				s.Save = func(percent int) error {
					return a.store.SetProgress(u.ID, b.ID, percent)
				}
			}
			if chapter > 0 {
				if chapter > len(b.Content) {
					return fmt.Errorf("%s has %d chapters", b.Title, len(b.Content))
				}
				start = chapter - 1
			}

			s.Pager = reader.NewPager(b.Content, start)
			s.Pager.WPM = a.cfg.WPM
			a.logger.Debug("opening book", "id", b.ID, "chapter", start+1)
			return a.read(cmd.Context(), s)
		},
	}
	cmd.Flags().IntVarP(&chapter, "chapter", "c", 0, "Chapter to open (1-based)")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore saved reading position")
	return cmd
}
