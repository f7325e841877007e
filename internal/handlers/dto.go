package handlers

import (
	"fmt"

	"github.com/gorilla/schema"

	"github.com/vancomm/minefield/internal/board"
	"github.com/vancomm/minefield/internal/session"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type NewGameDTO struct {
	Rows  *int `schema:"rows"`
	Cols  *int `schema:"cols"`
	Bombs *int `schema:"bombs"`
}

// Params fills the fields missing from the query with defaults.
func (dto NewGameDTO) Params(defaults board.Params) board.Params {
	p := defaults
	if dto.Rows != nil {
		p.Rows = *dto.Rows
	}
	if dto.Cols != nil {
		p.Cols = *dto.Cols
	}
	if dto.Bombs != nil {
		p.BombCount = *dto.Bombs
	}
	return p
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	if err := dec.Decode(&dto, src); err != nil {
		return dto, fmt.Errorf("invalid game params: %w", err)
	}
	return dto, nil
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	if err := dec.Decode(&dto, src); err != nil {
		return dto, fmt.Errorf("invalid cell position: %w", err)
	}
	return dto, nil
}

type SessionView struct {
	SessionId  string          `json:"session_id"`
	Rows       int             `json:"rows"`
	Cols       int             `json:"cols"`
	BombCount  int             `json:"bomb_count"`
	State      board.GameState `json:"state"`
	Background string          `json:"background"`
	Opened     int             `json:"opened"`
	Cells      [][]string      `json:"cells"`
	CreatedAt  int64           `json:"created_at"`
}

func NewSessionView(s *session.Session, b *board.Board) SessionView {
	return SessionView{
		SessionId:  s.Id,
		Rows:       b.Rows,
		Cols:       b.Cols,
		BombCount:  b.BombCount,
		State:      b.State,
		Background: b.State.Background(),
		Opened:     b.OpenCount(),
		Cells:      b.Labels(),
		CreatedAt:  s.CreatedAt.UnixMilli(),
	}
}

type CreatedSessionView struct {
	SessionView
	Token string `json:"token"`
}
