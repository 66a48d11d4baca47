package experiments

import (
	"fmt"

	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/searcher"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Setup describes a set of matchups between search agents.
type Setup struct {
	Name     string
	Matchups [][2]metrics.AgentConfig
	NumGames int // Per matchup
	Dir      string
}

// Summary tallies wins for the first and second agent of every matchup.
type Summary struct {
	Agent1Wins int
	Agent2Wins int
	Draws      int
}

type Report struct {
	Summaries   []Summary
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
}

// Run plays every matchup, alternating which agent plays X, and writes the
// records when a directory is configured.
func Run(setup Setup) (Report, error) {
	var report Report
	count := 0

	log.Info().Msgf("starting %s experiment...", setup.Name)

	for mi, matchup := range setup.Matchups {
		config1, config2 := matchup[0], matchup[1]
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(setup.Matchups), config1, config2)

		var summary Summary
		for i := 0; i < setup.NumGames; i++ {
			count++
			// Alternate the starting agent and vary seeds per game
			xConfig, oConfig, agent1Mark := config1, config2, game.X
			if i%2 == 1 {
				xConfig, oConfig, agent1Mark = config2, config1, game.O
			}
			result, err := runGame(xConfig, oConfig, uint64(count))
			if err != nil {
				return report, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			switch result.Winner {
			case game.None:
				summary.Draws++
			case agent1Mark:
				summary.Agent1Wins++
			default:
				summary.Agent2Wins++
			}

			gameID := count
			report.GameRecords = append(report.GameRecords, metrics.GameRecord{
				ID:         gameID,
				Agent1:     xConfig.ID,
				Agent2:     oConfig.ID,
				GameMetric: result.GameMetric,
			})
			report.MoveRecords = append(report.MoveRecords, lo.Map(result.MoveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
				return metrics.MoveRecord{Game: gameID, MoveMetric: mm}
			})...)

			log.Debug().Msgf("completed matchup %d game %d with winner: %s", mi+1, i+1, result.Winner)
		}
		report.Summaries = append(report.Summaries, summary)
		log.Info().Msgf("completed matchup %d of %d: %+v", mi+1, len(setup.Matchups), summary)
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	if setup.Dir == "" {
		return report, nil
	}
	if err := store(setup, report); err != nil {
		return report, err
	}
	return report, nil
}

func store(setup Setup, report Report) error {
	writer, err := metrics.NewWriter(setup.Dir, setup.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	configs := lo.UniqBy(lo.Flatten(lo.Map(setup.Matchups, func(m [2]metrics.AgentConfig, _ int) []metrics.AgentConfig {
		return m[:]
	})), func(c metrics.AgentConfig) int {
		return c.ID
	})
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(report.GameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(report.MoveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored move records")
	return nil
}

// runGame executes a single game between two agents on an empty board
func runGame(xConfig, oConfig metrics.AgentConfig, gameID uint64) (engine.Result, error) {
	x := player.NewSearch(game.X, createMCTS(xConfig, 2*gameID))
	o := player.NewSearch(game.O, createMCTS(oConfig, 2*gameID+1))
	return engine.LocalEngine(game.NewBoard(), x, o).Run()
}

func createMCTS(config metrics.AgentConfig, gameID uint64) *searcher.MCTS {
	return searcher.NewMCTS(
		searcher.WithEpisodes(config.Episodes),
		searcher.WithSeed(config.Seed*1_000_003+gameID),
		searcher.WithMetrics(),
	)
}
