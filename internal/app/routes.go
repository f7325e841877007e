package app

import (
	"github.com/vancomm/minefield/internal/handlers"
)

func (a *App) loadRoutes() {
	status := handlers.NewStatusHandler(a.log, a.store)
	game := handlers.NewGameHandler(
		a.log, a.store, a.jwt, a.cookies, a.ws, a.config.Board,
	)

	a.router.HandleFunc("GET /v1/status", status.Status)

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("DELETE /v1/game/{id}", game.Delete)
	a.router.HandleFunc("POST /v1/game/{id}/click", game.Click)
	a.router.HandleFunc("POST /v1/game/{id}/new", game.Restart)
	a.router.HandleFunc("POST /v1/game/{id}/batch", game.Batch)
	a.router.HandleFunc("GET /v1/game/{id}/connect", game.ConnectWS)
}
