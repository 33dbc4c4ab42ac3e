package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rocketscienceinc/trivia-backend/internal/entity"
)

type roomService interface {
	CreateRoom() string
	Join(ctx context.Context, roomID, playerID string) error
	Init(ctx context.Context, roomID string, inline []entity.Question, sourceURL string) error
	SubmitAnswer(ctx context.Context, roomID, playerID, answer string) error
	State(ctx context.Context, roomID string) (entity.Snapshot, error)
}

type Server struct {
	logger *slog.Logger
	rooms  roomService
}

func New(logger *slog.Logger, rooms roomService) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		rooms:  rooms,
	}
}

// Start runs the HTTP server until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.pingHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/rooms", that.createRoomHandler)
	mux.HandleFunc("POST /api/rooms/{roomID}/join", that.joinHandler)
	mux.HandleFunc("POST /api/rooms/{roomID}/init", that.initHandler)
	mux.HandleFunc("POST /api/rooms/{roomID}/answer", that.answerHandler)
	mux.HandleFunc("GET /api/rooms/{roomID}/state", that.stateHandler)

	return mux
}
