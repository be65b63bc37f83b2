// Package webhook exposes the ingestion pipeline over HTTP for a single,
// pre-configured user authenticated by a shared secret.
package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/store"
)

// Path is the only route served.
const Path = "/webhook/statement"

// MaxBodyBytes bounds the request body.
const MaxBodyBytes = 1 << 20

// Response messages
const (
	MsgUnauthorized  = "Segredo inválido."
	MsgMissingText   = "O campo text é obrigatório."
	MsgMalformedBody = "Corpo da requisição inválido."
	MsgMethod        = "Método não permitido."
	MsgInternalError = "Erro interno do servidor."
	MsgNotConfigured = "Webhook não configurado."
)

// StatementProcessor is the pipeline entry point the handler drives.
type StatementProcessor interface {
	ProcessStatementText(ctx context.Context, text, userID string, st store.TransactionStore) models.ProcessResult
}

// Request is the webhook payload.
type Request struct {
	Text   string `json:"text"`
	Secret string `json:"secret"`
}

// Handler serves POST /webhook/statement.
type Handler struct {
	processor StatementProcessor
	store     store.TransactionStore
	secret    string
	userID    string
	logger    logging.Logger
}

// NewHandler creates a handler importing into userID's ledger.
func NewHandler(processor StatementProcessor, st store.TransactionStore, secret, userID string, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Handler{
		processor: processor,
		store:     st,
		secret:    secret,
		userID:    userID,
		logger:    logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, MsgMethod)
		return
	}

	log := h.logger.WithField(logging.FieldRequestID, RequestIDFromContext(r.Context()))

	if h.processor == nil || h.store == nil || h.secret == "" || h.userID == "" {
		log.Error("Webhook is not configured")
		writeError(w, http.StatusInternalServerError, MsgNotConfigured)
		return
	}

	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, MsgMalformedBody)
			return
		}
		log.WithError(err).Warn("Malformed webhook body")
		writeError(w, http.StatusBadRequest, MsgMalformedBody)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.secret)) != 1 {
		log.Warn("Webhook secret mismatch")
		writeError(w, http.StatusUnauthorized, MsgUnauthorized)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, MsgMissingText)
		return
	}

	result := h.processor.ProcessStatementText(r.Context(), req.Text, h.userID, h.store)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	log.Info("Webhook statement processed",
		logging.Field{Key: logging.FieldUserID, Value: h.userID},
		logging.Field{Key: logging.FieldStatus, Value: status},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)})
	writeJSON(w, status, result)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError answers with a ProcessResult so every response has one shape.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.Failure(message))
}
