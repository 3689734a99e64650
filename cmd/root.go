package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gridle-game/gridle/internal/config"
	"github.com/gridle-game/gridle/internal/httpserver"
	"github.com/gridle-game/gridle/internal/store"
	"github.com/gridle-game/gridle/internal/tui"
	"github.com/gridle-game/gridle/internal/words"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gridle",
	Short: "A five-letter word-guessing game",
	Long: `gridle is a five-letter word-guessing game: six tries, per-letter
feedback after each guess.

Play in the terminal
	gridle play

Or serve the JSON API for a browser front end
	gridle serve
`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, src, err := setup()
		if err != nil {
			return err
		}

		var st store.Store
		if cfg.Session.DB != "" {
			st, err = store.NewSQLiteStore(cfg.Session.DB)
			if err != nil {
				return err
			}
			log.Info().Str("db", cfg.Session.DB).Msg("using sqlite session store")
		} else {
			st = store.NewMemoryStore()
		}

		srv := httpserver.New(cfg, st, src)
		log.Info().Str("port", cfg.Server.Port).Int("candidates", src.Count()).Msg("starting gridle server")
		return srv.Start(":" + cfg.Server.Port)
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, src, err := setup()
		if err != nil {
			return err
		}
		return tui.Run(src)
	},
}

// setup loads .env, configuration, logging, and the word source — the
// pieces both hosts share. A dictionary that filters down to nothing is
// fatal: no host may start a session without words.
func setup() (*config.Config, *words.Source, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	src, err := words.Load(cfg.Words.File)
	if err != nil {
		return nil, nil, err
	}
	return cfg, src, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
}
