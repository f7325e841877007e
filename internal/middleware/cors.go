package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"

	"github.com/vancomm/minefield/internal/config"
)

func Cors(c config.CorsConfig) Middleware {
	options := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}
	if len(c.AllowedOrigins) == 0 || slices.Contains(c.AllowedOrigins, "*") {
		// credentials rule out a literal "*", echo the origin instead
		options.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		options.AllowedOrigins = c.AllowedOrigins
	}
	return cors.New(options).Handler
}
