package board

import "fmt"

type GameState int

const (
	Playing GameState = iota
	Won
	Lost
)

func (s GameState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

func (s GameState) Terminal() bool {
	return s == Won || s == Lost
}

// Background is the board background a client paints for s.
func (s GameState) Background() string {
	switch s {
	case Won:
		return "green"
	case Lost:
		return "red"
	default:
		return "white"
	}
}

// [GameState] implements [encoding.TextMarshaler]
func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
