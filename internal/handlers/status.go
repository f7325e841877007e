package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/session"
)

type StatusHandler struct {
	log   logrus.FieldLogger
	store *session.Store
}

func NewStatusHandler(log logrus.FieldLogger, store *session.Store) *StatusHandler {
	return &StatusHandler{log: log, store: store}
}

type statusJSON struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (h StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, h.log, statusJSON{Status: "ok", Sessions: h.store.Count()})
}
