package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/metcalfc/shelf/internal/catalog"
	"github.com/metcalfc/shelf/internal/config"
	"github.com/metcalfc/shelf/internal/cover"
	"github.com/metcalfc/shelf/internal/ingest"
	"github.com/metcalfc/shelf/internal/reader"
	"github.com/metcalfc/shelf/internal/segment"
	"github.com/metcalfc/shelf/internal/state"
	"github.com/metcalfc/shelf/internal/version"
	"github.com/spf13/cobra"
)

// Session is a book opened for reading.
type Session struct {
	Book  catalog.Book
	Pager *reader.Pager

	// Save records progress for the current user. It is nil when nobody is logged in.
	Save func(percent int) error
}

// ReadFunc presents a Session to the user until they are done with it.
type ReadFunc func(ctx context.Context, s *Session) error

// app is the state shared by every command once configuration is loaded.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *catalog.Catalog
	store   *state.StateStore
	read    ReadFunc
}

func (a *app) ingester() *ingest.Ingester {
	return ingest.New(ingest.Config{
		Segmenter: segment.New(segment.Options{
			MinChapterLen: a.cfg.MinChapterLen,
			ChunkSize:     a.cfg.ChunkSize,
		}),
		Catalog: a.catalog,
		State:   a.store,
		Covers:  cover.New(),
		Logger:  a.logger,
	})
}

// currentUser returns the logged-in account or an error telling how to log in.
func (a *app) currentUser() (*state.User, error) {
	u, err := a.store.Current()
	if err != nil {
		return nil, fmt.Errorf("%w (run `shelf login`)", err)
	}
	return u, nil
}

func (a *app) requireAdmin() (*state.User, error) {
	u, err := a.currentUser()
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin {
		return nil, ingest.ErrForbidden
	}
	return u, nil
}

// NewRootCmd builds the command tree. read opens books for `shelf read`.
func NewRootCmd(read ReadFunc) *cobra.Command {
	a := &app{read: read}
	var configPath, stateDir string

	root := &cobra.Command{
		Use:   "shelf",
		Short: "A terminal book catalog",
		Long: `Shelf keeps a catalog of books on disk. Admins add PDF, EPUB, Markdown or
text files, which are split into chapters and given a cover; readers browse,
search, bookmark favorites, comment and read chapter by chapter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if stateDir != "" {
				cfg.StateDir = stateDir
			}
			a.cfg = cfg
			a.logger = cfg.NewLogger(cmd.ErrOrStderr())
			slog.SetDefault(a.logger)

			if a.catalog, err = catalog.Open(cfg.StateDir); err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			if a.store, err = state.NewStateStore(cfg.StateDir, cfg.AdminEmail); err != nil {
				return fmt.Errorf("open account state: %w", err)
			}
			a.logger.Debug("state loaded", "dir", cfg.StateDir, "books", len(a.catalog.List()))
			return nil
		},
	}
	root.Version = version.Version
	root.SetVersionTemplate(fmt.Sprintf("shelf %s\n", version.String()))

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/shelf/config.yaml)")
	root.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Directory holding catalog and account files")

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newAddCmd(a),
		newSegmentCmd(a),
		newRemoveCmd(a),
		newSeedCmd(a),
		newListCmd(a),
		newSearchCmd(a),
		newShowCmd(a),
		newReadCmd(a),
		newFavCmd(a),
		newFavoritesCmd(a),
		newCommentCmd(a),
		newCommentsCmd(a),
		newCoverCmd(a),
		newFormatsCmd(),
	)
	return root
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute(read ReadFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd(read).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
