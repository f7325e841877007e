package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/board"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/session"
)

const maxBatchBytes = 1 << 16

var (
	ErrBoardTooLarge = errors.New("board exceeds the size limit")
	ErrUnauthorized  = errors.New("missing or invalid session token")
)

type GameHandler struct {
	log      logrus.FieldLogger
	store    *session.Store
	jwt      *config.JWT
	cookies  *config.Cookies
	ws       *config.WebSocket
	defaults board.Params
	maxRows  int
	maxCols  int
}

func NewGameHandler(
	log logrus.FieldLogger,
	store *session.Store,
	jwt *config.JWT,
	cookies *config.Cookies,
	ws *config.WebSocket,
	boardConfig config.BoardConfig,
) *GameHandler {
	return &GameHandler{
		log:      log,
		store:    store,
		jwt:      jwt,
		cookies:  cookies,
		ws:       ws,
		defaults: boardConfig.Params(),
		maxRows:  boardConfig.MaxRows,
		maxCols:  boardConfig.MaxCols,
	}
}

func sessionPath(id string) string {
	return "/v1/game/" + id
}

// getSession loads the session named in the path and checks the caller holds
// a token for it. On failure the response has already been written.
func (g GameHandler) getSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.PathValue("id")
	s, err := g.store.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		sendError(w, g.log, http.StatusNotFound, err)
		return nil, false
	}
	token, err := g.cookies.Token(r)
	if err == nil {
		err = g.jwt.Verify(token, id)
	}
	if err != nil {
		g.log.WithFields(logrus.Fields{
			"session": id,
			"error":   err,
		}).Debug("rejected session token")
		sendError(w, g.log, http.StatusUnauthorized, ErrUnauthorized)
		return nil, false
	}
	return s, true
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	params := dto.Params(g.defaults)
	if params.Rows > g.maxRows || params.Cols > g.maxCols {
		sendError(w, g.log, http.StatusBadRequest,
			fmt.Errorf("%w: %dx%d", ErrBoardTooLarge, g.maxRows, g.maxCols))
		return
	}

	s, err := g.store.Create(params)
	if errors.Is(err, board.ErrInvalidParams) {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithField("error", err).Error("unable to create a session")
		return
	}

	token, err := g.jwt.Sign(s.Id)
	if err != nil {
		g.store.Delete(s.Id)
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithField("error", err).Error("unable to sign a session token")
		return
	}
	expires := time.Now().Add(g.jwt.TokenLifetime)
	if err := g.cookies.Set(w, sessionPath(s.Id), token, expires); err != nil {
		g.store.Delete(s.Id)
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithField("error", err).Error("unable to set session cookies")
		return
	}

	sendStatusJSON(w, g.log, http.StatusCreated, CreatedSessionView{
		SessionView: NewSessionView(s, s.Board()),
		Token:       token,
	})
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.getSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, NewSessionView(s, s.Board()))
}

func (g GameHandler) Click(w http.ResponseWriter, r *http.Request) {
	s, ok := g.getSession(w, r)
	if !ok {
		return
	}
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	b := s.Click(pos.Row, pos.Col)
	g.log.WithFields(logrus.Fields{
		"session": s.Id,
		"row":     pos.Row,
		"col":     pos.Col,
		"state":   b.State,
		"board":   b,
	}).Debug("click")

	sendJSONOrLog(w, g.log, NewSessionView(s, b))
}

func (g GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	s, ok := g.getSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, NewSessionView(s, s.NewGame()))
}

// Batch accepts newline separated commands in the body. If any command is
// malformed nothing is applied and the reply is 400 with the line number.
// Bodies over maxBatchBytes are rejected whole.
func (g GameHandler) Batch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.getSession(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		sendError(w, g.log, http.StatusRequestEntityTooLarge,
			fmt.Errorf("batch exceeds %d bytes", tooLarge.Limit))
		return
	}
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	cmds, err := parseCommands(string(body))
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		sendStatusJSON(w, g.log, http.StatusBadRequest, commandErrorPayload(cmdErr))
		return
	}

	var b *board.Board
	s.Do(func(e *board.Engine) {
		executeCommands(e, cmds)
		b = e.Board()
	})
	sendJSONOrLog(w, g.log, NewSessionView(s, b))
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := g.getSession(w, r)
	if !ok {
		return
	}
	g.store.Delete(s.Id)
	g.cookies.Clear(w, sessionPath(s.Id))
	w.WriteHeader(http.StatusNoContent)
}

type commandErrorJSON struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

func commandErrorPayload(err *CommandError) commandErrorJSON {
	return commandErrorJSON{Line: err.Line, Error: err.Err.Error()}
}
