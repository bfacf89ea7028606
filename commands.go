package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordconnect/assets"
	"github.com/robalobadob/wordconnect/internal/auth"
	"github.com/robalobadob/wordconnect/internal/config"
	"github.com/robalobadob/wordconnect/internal/game"
	"github.com/robalobadob/wordconnect/internal/httpserver"
	"github.com/robalobadob/wordconnect/internal/layout"
	"github.com/robalobadob/wordconnect/internal/level"
	"github.com/robalobadob/wordconnect/internal/puzzle"
	"github.com/robalobadob/wordconnect/internal/storage"
	"github.com/robalobadob/wordconnect/internal/store"
)

func newRootCmd() *cobra.Command {
	var levelFile string

	root := &cobra.Command{
		Use:          "wordconnect",
		Short:        "Word-connect puzzle server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log.Logger = cfg.SetupLogging()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&levelFile, "level", "", "level YAML file (default: $LEVEL_FILE or the built-in level)")

	root.AddCommand(newServeCmd(&levelFile), newPlayCmd(&levelFile), newValidateCmd())
	return root
}

func loadLevel(flag string, cfg config.Config) (*level.Level, error) {
	path := flag
	if path == "" {
		path = cfg.LevelFile
	}
	return level.FromFileOrDefault(path)
}

func newServeCmd(levelFile *string) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			lv, err := loadLevel(*levelFile, cfg)
			if err != nil {
				return fmt.Errorf("load level: %w", err)
			}

			db, err := storage.Open(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()
			if err := storage.Migrate(db, assets.Migrations()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			srv := httpserver.New(httpserver.Deps{
				Store: store.NewMemoryStore(),
				DB:    db,
				Auth: auth.NewService(db, auth.Options{
					Secret:      cfg.JWTSecret,
					ExpiresDays: cfg.JWTExpiresDays,
					CookieName:  cfg.CookieName,
					Secure:      cfg.Production(),
				}),
				Level:        lv,
				DailySalt:    cfg.DailySalt,
				ClientOrigin: cfg.ClientOrigin,
				Timeout:      cfg.RequestTimeout,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info().Str("port", cfg.Port).Str("level", lv.Name).Msg("starting wordconnect server")
			return srv.Start(ctx, ":"+cfg.Port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default: $PORT or 5175)")
	return cmd
}

func newPlayCmd(levelFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the level in the terminal, one typed word per gesture",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			lv, err := loadLevel(*levelFile, cfg)
			if err != nil {
				return fmt.Errorf("load level: %w", err)
			}
			g, err := game.New(lv, layout.DefaultRing)
			if err != nil {
				return err
			}
			return play(cmd.InOrStdin(), cmd.OutOrStdout(), g)
		},
	}
}

// play reads one word per line and spells it as a single gesture until the
// puzzle is complete or input ends.
func play(in io.Reader, out io.Writer, g *game.Game) error {
	printBoard(out, g.Snapshot())
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		word := game.Normalize(sc.Text())
		if word == "" {
			continue
		}
		u, err := g.Spell(word)
		if err != nil {
			fmt.Fprintf(out, "  %v\n", err)
			continue
		}
		for _, e := range u.Events {
			switch e.Type {
			case puzzle.EventWordNewlyFound:
				fmt.Fprintf(out, "  found %s (%d/%d)\n", e.Word, u.Snapshot.FoundCount, u.Snapshot.Total)
			case puzzle.EventWordAlreadyFound:
				fmt.Fprintf(out, "  %s already found\n", e.Word)
			case puzzle.EventNoMatch:
				fmt.Fprintln(out, "  no match")
			case puzzle.EventPuzzleCompleted:
				fmt.Fprintf(out, "  found %s, puzzle complete in %d gestures\n", e.Word, u.Snapshot.Gestures)
			}
		}
		if u.JustCompleted {
			return nil
		}
	}
	return sc.Err()
}

func printBoard(out io.Writer, s game.Snapshot) {
	glyphs := make([]string, len(s.Letters))
	for i, l := range s.Letters {
		glyphs[i] = l.Glyph
	}
	slots := make([]string, len(s.Words))
	for i, w := range s.Words {
		slots[i] = strings.Repeat("_", w.Length)
	}
	fmt.Fprintf(out, "letters: %s\nwords:   %s\n", strings.Join(glyphs, " "), strings.Join(slots, " "))
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <level.yaml>",
		Short: "Check a level file and exit non-zero if it cannot be played",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lv, err := level.Load(args[0])
			if err != nil {
				return err
			}
			log.Debug().Str("level", lv.Name).Int("letters", len(lv.Letters)).Int("words", len(lv.Words)).Msg("level ok")
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d letters, %d words\n", lv.Name, len(lv.Letters), len(lv.Words))
			return nil
		},
	}
}
