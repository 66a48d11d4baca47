// meta/meta.go
package meta

// EPISODES defines the default number of MCTS episodes per move.
const EPISODES = 100

// GAMES defines the default number of games per experiment matchup.
const GAMES = 20

// MAX_TURNS bounds a game loop; a 3x3 board fills in 9 moves.
const MAX_TURNS = 9

// OUTPUT_DIR defines where experiment records are written.
const OUTPUT_DIR = "experiments"
