package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/board"
)

// ConnectWS upgrades an authorized request and then answers every text
// message with the session view after applying its commands. A malformed
// message gets an error reply and the connection stays open.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.getSession(w, r)
	if !ok {
		return
	}
	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithField("error", err).Error("unable to upgrade connection")
		return
	}
	defer c.Close()

	log := g.log.WithField("session", s.Id)
	log.Debug("websocket connected")
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithField("error", err).Warn("websocket read failed")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		log.Debug("> ", string(message))

		var reply any
		cmds, err := parseCommands(string(message))
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			reply = commandErrorPayload(cmdErr)
		} else {
			var b *board.Board
			s.Do(func(e *board.Engine) {
				executeCommands(e, cmds)
				b = e.Board()
			})
			reply = NewSessionView(s, b)
		}

		if err := c.WriteJSON(reply); err != nil {
			log.WithFields(logrus.Fields{"error": err}).Error("websocket write failed")
			break
		}
	}
}
