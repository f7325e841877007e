package session

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/board"
)

var ErrNotFound = errors.New("session not found")

// Session is one player's game. All access to the engine goes through the
// session's lock so concurrent requests are applied one at a time.
type Session struct {
	mu        sync.Mutex
	Id        string
	CreatedAt time.Time
	touchedAt time.Time
	engine    *board.Engine
}

func newSessionId() string {
	u := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(u[:])
}

// Do runs fn with exclusive access to the session's engine.
func (s *Session) Do(fn func(e *board.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now()
	fn(s.engine)
}

func (s *Session) Board() *board.Board {
	var b *board.Board
	s.Do(func(e *board.Engine) { b = e.Board() })
	return b
}

func (s *Session) Click(row, col int) *board.Board {
	var b *board.Board
	s.Do(func(e *board.Engine) {
		e.Click(row, col)
		b = e.Board()
	})
	return b
}

func (s *Session) NewGame() *board.Board {
	var b *board.Board
	s.Do(func(e *board.Engine) { b = e.NewGame() })
	return b
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

// Store keeps sessions in memory for the lifetime of the process.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	log      logrus.FieldLogger
}

func NewStore(ttl time.Duration, log logrus.FieldLogger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		log:      log,
	}
}

func (st *Store) Create(params board.Params) (*Session, error) {
	engine, err := board.NewEngine(params, board.NewRand())
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &Session{
		Id:        newSessionId(),
		CreatedAt: now,
		touchedAt: now,
		engine:    engine,
	}

	st.mu.Lock()
	st.sessions[s.Id] = s
	st.mu.Unlock()

	st.log.WithFields(logrus.Fields{
		"session": s.Id,
		"params":  params.String(),
	}).Debug("session created")
	return s, nil
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete removes id without checking if it existed.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops every session idle for longer than the store's ttl as of now
// and returns how many were dropped.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	dropped := 0
	for id, s := range st.sessions {
		if now.Sub(s.idleSince()) > st.ttl {
			delete(st.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps the store every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := st.Sweep(now); n > 0 {
				st.log.WithFields(logrus.Fields{
					"dropped": n,
					"live":    st.Count(),
				}).Info("swept idle sessions")
			}
		}
	}
}
