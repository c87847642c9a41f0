package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"quizduel-backend/internal/config"
	"quizduel-backend/internal/game"
	"quizduel-backend/internal/handlers"
	"quizduel-backend/internal/middleware"
	"quizduel-backend/internal/rate"
	"quizduel-backend/internal/trivia"

	"github.com/MadAppGang/httplog"
	"github.com/coder/websocket"
	"github.com/rs/cors"
)

func init() {
	if os.Getenv("DEBUG") == "yes" {
		middleware.CORS = cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
		})
		middleware.HTTPLogger = httplog.LoggerWithConfig(httplog.LoggerConfig{
			RouterName: "QuizDuel",
			Formatter: httplog.ChainLogFormatter(
				httplog.DefaultLogFormatter,
				httplog.RequestHeaderLogFormatter, httplog.RequestBodyLogFormatter,
				httplog.ResponseHeaderLogFormatter, httplog.ResponseBodyLogFormatter),
			CaptureBody: true,
		})
		middleware.DefaultMiddlewares = []middleware.Middleware{
			middleware.RequestIDMiddleware, middleware.CORS.Handler, middleware.HTTPLogger,
		}
	}
}

func main() {
	cfg, err := config.LoadConfig("") // TODO: config flags
	if err != nil {
		log.Fatal(err)
	}

	rooms := game.NewRooms()
	source := trivia.NewClient(cfg.Trivia)
	coord := game.NewCoordinator(rooms, source, cfg.Trivia)

	var limiter *rate.Limiter
	if cfg.Rate.Limit >= 0 {
		limiter = rate.NewLimiter(cfg.Rate.Window, cfg.Rate.Limit)
	}

	acceptOpts := websocket.AcceptOptions{
		InsecureSkipVerify: true, // Accepting all origins.
	}

	duelHandler := handlers.DuelHandler(cfg, coord, limiter, acceptOpts)

	http.Handle("GET /duel", middleware.ApplyDefaults(duelHandler))

	srv := http.Server{
		Addr:        cfg.ListenAddr,
		Handler:     http.DefaultServeMux,
		ReadTimeout: 15 * time.Second,
	}

	log.Printf("listening on addr %q\n", srv.Addr)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
