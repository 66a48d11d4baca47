package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"tictactoe/experiments/metrics"
	"tictactoe/game"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("playing and storing every matchup", func(t *testing.T) {
		dir := t.TempDir()
		strong := metrics.AgentConfig{ID: 1, Episodes: 200, Seed: 1}
		weak := metrics.AgentConfig{ID: 2, Episodes: 0, Seed: 2}
		setup := Setup{
			Name:     "budget",
			Matchups: [][2]metrics.AgentConfig{{strong, weak}, {strong, strong}},
			NumGames: 4,
			Dir:      dir,
		}

		report, err := Run(setup)

		require.NoError(t, err)
		require.Len(t, report.GameRecords, 8)
		require.Len(t, report.Summaries, 2)
		for _, s := range report.Summaries {
			require.Equal(t, 4, s.Agent1Wins+s.Agent2Wins+s.Draws, "Every game should be tallied")
		}

		require.Equal(t, strong.ID, report.GameRecords[0].Agent1, "First game should start with agent1 as X")
		require.Equal(t, weak.ID, report.GameRecords[1].Agent1, "Second game should swap sides")

		moves := 0
		for _, g := range report.GameRecords {
			require.LessOrEqual(t, g.TotalMoves, game.Squares)
			require.Equal(t, game.X, g.StartingPlayer)
			moves += g.TotalMoves
		}
		require.Len(t, report.MoveRecords, moves, "Every move should be recorded")

		runs, err := os.ReadDir(filepath.Join(dir, "budget"))
		require.NoError(t, err)
		require.Len(t, runs, 1)
		for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(dir, "budget", runs[0].Name(), name))
		}
	})

	t.Run("skipping storage without a directory", func(t *testing.T) {
		agent := metrics.AgentConfig{ID: 1, Episodes: 10}

		report, err := Run(Setup{Name: "dry", Matchups: [][2]metrics.AgentConfig{{agent, agent}}, NumGames: 1})

		require.NoError(t, err)
		require.Len(t, report.GameRecords, 1)
	})
}
