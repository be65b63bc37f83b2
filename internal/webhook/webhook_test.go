package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/pipeline"
	"jose/statement-ingest/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "s3cr3t"
	testUser   = "user-1"
)

// mockProcessor records its calls and returns a canned result.
type mockProcessor struct {
	ProcessFunc func(ctx context.Context, text, userID string, st store.TransactionStore) models.ProcessResult
	calls       []string
}

func (m *mockProcessor) ProcessStatementText(ctx context.Context, text, userID string, st store.TransactionStore) models.ProcessResult {
	m.calls = append(m.calls, userID+":"+text)
	if m.ProcessFunc != nil {
		return m.ProcessFunc(ctx, text, userID, st)
	}
	return models.ProcessResult{Success: true, Message: "ok"}
}

func newTestRouter(p StatementProcessor, st store.TransactionStore, secret, user string) (http.Handler, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	return NewRouter(NewHandler(p, st, secret, user, logger), logger), logger
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, models.ProcessResult) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var res models.ProcessResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return rec, res
}

func TestHandler_StatusCodes(t *testing.T) {
	failing := &mockProcessor{ProcessFunc: func(context.Context, string, string, store.TransactionStore) models.ProcessResult {
		return models.Failure(pipeline.MsgNoTransactions)
	}}

	tests := []struct {
		name       string
		processor  *mockProcessor
		secret     string
		body       string
		wantStatus int
		wantError  string
		wantCalled bool
	}{
		{"success", &mockProcessor{}, testSecret, `{"text":"hoje uber 15,50","secret":"s3cr3t"}`, http.StatusOK, "", true},
		{"wrong secret", &mockProcessor{}, testSecret, `{"text":"hoje uber 15,50","secret":"nope"}`, http.StatusUnauthorized, MsgUnauthorized, false},
		{"secret prefix is not a match", &mockProcessor{}, testSecret, `{"text":"x","secret":"s3cr3"}`, http.StatusUnauthorized, MsgUnauthorized, false},
		{"missing secret", &mockProcessor{}, testSecret, `{"text":"hoje uber 15,50"}`, http.StatusUnauthorized, MsgUnauthorized, false},
		{"missing text", &mockProcessor{}, testSecret, `{"secret":"s3cr3t"}`, http.StatusBadRequest, MsgMissingText, false},
		{"blank text", &mockProcessor{}, testSecret, `{"text":"  \n ","secret":"s3cr3t"}`, http.StatusBadRequest, MsgMissingText, false},
		{"malformed body", &mockProcessor{}, testSecret, `{"text":`, http.StatusBadRequest, MsgMalformedBody, false},
		{"pipeline failure", failing, testSecret, `{"text":"lorem","secret":"s3cr3t"}`, http.StatusBadRequest, pipeline.MsgNoTransactions, true},
		{"unconfigured secret", &mockProcessor{}, "", `{"text":"x","secret":""}`, http.StatusInternalServerError, MsgNotConfigured, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(tt.processor, store.NewMockStore(), tt.secret, testUser)
			rec, res := post(t, router, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, res.Error)
			assert.Equal(t, tt.wantStatus == http.StatusOK, res.Success)
			assert.Equal(t, tt.wantCalled, len(tt.processor.calls) == 1)
		})
	}
}

func TestHandler_UsesConfiguredUser(t *testing.T) {
	p := &mockProcessor{}
	router, _ := newTestRouter(p, store.NewMockStore(), testSecret, testUser)

	rec, _ := post(t, router, `{"text":"hoje uber 15,50","secret":"s3cr3t","user_id":"intruder"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"user-1:hoje uber 15,50"}, p.calls)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(&mockProcessor{}, store.NewMockStore(), testSecret, testUser)
	req := httptest.NewRequest(http.MethodGet, Path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestHandler_BodyTooLarge(t *testing.T) {
	router, _ := newTestRouter(&mockProcessor{}, store.NewMockStore(), testSecret, testUser)
	body := `{"secret":"s3cr3t","text":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	rec, _ := post(t, router, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	p := &mockProcessor{ProcessFunc: func(context.Context, string, string, store.TransactionStore) models.ProcessResult {
		panic("boom")
	}}
	router, logger := newTestRouter(p, store.NewMockStore(), testSecret, testUser)

	rec, res := post(t, router, `{"text":"x","secret":"s3cr3t"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, MsgInternalError, res.Error)
	assert.True(t, logger.HasEntry("ERROR", "Panic recovered"))
	assert.True(t, logger.HasEntry("ERROR", "HTTP request"))
}

func TestRequestID(t *testing.T) {
	router, logger := newTestRouter(&mockProcessor{}, store.NewMockStore(), testSecret, testUser)

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(`{"text":"x","secret":"s3cr3t"}`))
	req.Header.Set(HeaderRequestID, "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(HeaderRequestID))

	var logged bool
	for _, e := range logger.GetEntriesByLevel("INFO") {
		for _, f := range e.Fields {
			if f.Key == logging.FieldRequestID && f.Value == "req-42" {
				logged = true
			}
		}
	}
	assert.True(t, logged, "request id is attached to log entries")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, Path, strings.NewReader(`{"text":"x","secret":"s3cr3t"}`)))
	assert.Len(t, rec.Header().Get(HeaderRequestID), 36, "generated ids are UUIDs")
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newTestRouter(&mockProcessor{}, store.NewMockStore(), testSecret, testUser)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandler_EndToEndWithPipeline(t *testing.T) {
	logger := logging.NewMockLogger()
	processor := pipeline.NewProcessor(nil, nil, nil, nil, logger)
	st := store.NewMockStore()

	router := NewRouter(NewHandler(processor, st, testSecret, testUser, logger), logger)
	body := `{"text":"21/01/2026,-46.00,card_not_present,Compra no débito - Sonda Supermercados","secret":"s3cr3t"}`

	rec, res := post(t, router, body)
	require.Equal(t, http.StatusOK, rec.Code, res.Error)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "2026-01-21", res.Transactions[0].Date)
	assert.Len(t, st.UserTransactions(testUser), 1)

	rec, res = post(t, router, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, pipeline.MsgAllDuplicates, res.Error)
	assert.Len(t, res.Duplicates, 1)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	srv := NewServer("127.0.0.1:0", &mockProcessor{}, store.NewMockStore(), testSecret, testUser, logging.NewMockLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
