package webhook

import (
	"context"
	"errors"
	"net/http"
	"time"

	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/store"
)

// Server timeouts
const (
	ReadHeaderTimeout = 10 * time.Second
	WriteTimeout      = 5 * time.Minute
	ShutdownTimeout   = 15 * time.Second
)

// NewRouter mounts the handler behind the request id, logging and recovery
// middleware.
func NewRouter(h *Handler, logger logging.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	var handler http.Handler = mux
	handler = Recovery(logger)(handler)
	handler = Logger(logger)(handler)
	handler = RequestID(handler)
	return handler
}

// Server runs the webhook until its context is cancelled.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
}

// NewServer creates a server listening on addr.
func NewServer(addr string, processor StatementProcessor, st store.TransactionStore, secret, userID string, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	h := NewHandler(processor, st, secret, userID, logger)
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(h, logger),
			ReadHeaderTimeout: ReadHeaderTimeout,
			WriteTimeout:      WriteTimeout,
		},
		logger: logger,
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Webhook server listening", logging.Field{Key: "addr", Value: s.httpServer.Addr})
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down webhook server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
