package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tictactoe/game"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting a search", func(t *testing.T) {
		c := NewCollector()
		c.Start(3)
		for i := 0; i < 3; i++ {
			c.AddEpisode()
			c.AddPlayout(i + 1)
		}
		c.AddExpansion()

		m := c.Complete()

		require.Equal(t, 3, m.Budget)
		require.Equal(t, 3, m.Episodes)
		require.Equal(t, 1, m.Expansions)
		require.Equal(t, 3, m.FullPlayouts)
		require.InDelta(t, 2.0, m.MeanPlayoutDepth(), 1e-9)
	})

	t.Run("starting resets the previous search", func(t *testing.T) {
		c := NewCollector()
		c.Start(1)
		c.AddEpisode()
		c.Start(5)

		require.Zero(t, c.Complete().Episodes)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(3)
		c.AddEpisode()

		require.Equal(t, SearchMetric{}, c.Complete())
		require.Zero(t, c.Complete().MeanPlayoutDepth())
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "selfplay")
	require.NoError(t, err)

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Episodes: 50, Seed: 7}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		ID: 1, Agent1: 1, Agent2: 1,
		GameMetric: GameMetric{StartingPlayer: game.X, Winner: game.O, TotalMoves: 6, Duration: time.Second},
	}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
		Game:       1,
		MoveMetric: MoveMetric{Step: 1, Player: game.X, Move: 4, SearchMetric: SearchMetric{Episodes: 50}},
	}}))

	configs := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, [][]string{{"id", "episodes", "seed"}, {"1", "50", "7"}}, configs)

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, []string{"1", "1", "1", "X", "O", "6"}, games[1][:6])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, moves, 2)
	require.Equal(t, []string{"1", "1", "X", "4"}, moves[1][:4])
	require.Equal(t, "0.000", moves[1][7])
}
