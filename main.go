package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"tictactoe/config"
	"tictactoe/engine"
	"tictactoe/experiments"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/searcher"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath string
	logLevel   string
	episodes   int
	seed       uint64
	human      string
	games      int
	outputDir  string
}

func main() {
	f := &flags{}
	root := &cobra.Command{
		Use:           "tictactoe",
		Short:         "Play tic-tac-toe against a Monte Carlo tree search",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().IntVar(&f.episodes, "episodes", -1, "MCTS episodes per move")
	root.PersistentFlags().Uint64Var(&f.seed, "seed", 0, "random seed, 0 seeds from the clock")

	play := &cobra.Command{
		Use:   "play",
		Short: "Play against the search player",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return runPlay(cfg)
		},
	}
	play.Flags().StringVar(&f.human, "human", "", "mark played by the human (X or O)")

	selfplay := &cobra.Command{
		Use:   "selfplay",
		Short: "Watch two search players play each other",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return runSelfplay(cfg)
		},
	}
	selfplay.Flags().IntVar(&f.games, "games", 1, "number of games")

	experiment := &cobra.Command{
		Use:   "experiment",
		Short: "Run the configured matchups and store CSV records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return runExperiment(cfg)
		},
	}
	experiment.Flags().IntVar(&f.games, "games", 0, "games per matchup")
	experiment.Flags().StringVar(&f.outputDir, "output-dir", "", "directory for experiment records")

	root.AddCommand(play, selfplay, experiment)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.episodes >= 0 {
		cfg.Episodes = f.episodes
	}
	if f.seed != 0 {
		cfg.Seed = f.seed
	}
	if f.human != "" {
		cfg.Human = f.human
	}
	if cmd.Flags().Changed("games") {
		cfg.Games = f.games
	}
	if f.outputDir != "" {
		cfg.OutputDir = f.outputDir
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	log.Logger = log.Output(output).Level(cfg.Level())
	log.Debug().Msgf("loaded config: %+v", cfg)
	return cfg, nil
}

func newSearch(mark game.Mark, cfg config.Config, offset uint64) *player.Search {
	options := []searcher.Option{searcher.WithEpisodes(cfg.Episodes), searcher.WithMetrics()}
	if cfg.Seed != 0 {
		options = append(options, searcher.WithSeed(cfg.Seed+offset))
	}
	return player.NewSearch(mark, searcher.NewMCTS(options...))
}

func runPlay(cfg config.Config) error {
	mark, err := cfg.HumanMark()
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer rl.Close()

	human := player.NewHuman(mark, rl, rl.Stdout())
	bot := newSearch(mark.Opponent(), cfg, 0)
	x, o := player.Player(human), player.Player(bot)
	if mark == game.O {
		x, o = bot, human
	}

	_, err = engine.LocalEngine(game.NewBoard(), x, o, engine.WithOutput(rl.Stdout())).Run()
	return err
}

func runSelfplay(cfg config.Config) error {
	tally := map[game.Mark]int{}
	for i := 0; i < cfg.Games; i++ {
		x := newSearch(game.X, cfg, uint64(2*i))
		o := newSearch(game.O, cfg, uint64(2*i+1))
		result, err := engine.LocalEngine(game.NewBoard(), x, o, engine.WithOutput(os.Stdout)).Run()
		if err != nil {
			return err
		}
		tally[result.Winner]++
	}
	fmt.Printf("X wins: %d, O wins: %d, ties: %d\n", tally[game.X], tally[game.O], tally[game.None])
	return nil
}

func runExperiment(cfg config.Config) error {
	matchups := cfg.Experiment.Matchups
	if cfg.Seed != 0 {
		for i := range matchups {
			for j := range matchups[i] {
				if matchups[i][j].Seed == 0 {
					matchups[i][j].Seed = cfg.Seed
				}
			}
		}
	}

	report, err := experiments.Run(experiments.Setup{
		Name:     cfg.Experiment.Name,
		Matchups: matchups,
		NumGames: cfg.Games,
		Dir:      cfg.OutputDir,
	})
	if err != nil {
		return err
	}
	for i, s := range report.Summaries {
		printSummary(i+1, matchups[i], s)
	}
	return nil
}

func printSummary(n int, matchup [2]metrics.AgentConfig, s experiments.Summary) {
	fmt.Printf("matchup %d: agent %d (%d episodes) %d - %d agent %d (%d episodes), %d ties\n",
		n, matchup[0].ID, matchup[0].Episodes, s.Agent1Wins, s.Agent2Wins, matchup[1].ID, matchup[1].Episodes, s.Draws)
}
