package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

//go:embed schema.sql
var schema string

// openRetries bounds the ping retries while the database file is locked by
// another process.
const openRetries = 3

// SQLiteStore implements TransactionStore on a SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// Open opens or creates the database at dbPath and applies the schema.
func Open(ctx context.Context, dbPath string, logger logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), models.PermissionDirectory); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	ping := func() error {
		if err := db.PingContext(ctx); err != nil {
			logger.WithError(err).Warn("Database not ready, retrying",
				logging.Field{Key: "path", Value: dbPath})
			return err
		}
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), openRetries), ctx)
	if err := backoff.Retry(ping, policy); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger, now: time.Now}
	if err := s.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Init creates tables if they don't exist
func (s *SQLiteStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const selectTransaction = `
	SELECT id, user_id, date, description, amount, type, category, subcategory, created_at
	FROM transactions`

// QueryUserTransactionsSince returns the user's transactions within filter,
// oldest first.
func (s *SQLiteStore) QueryUserTransactionsSince(ctx context.Context, userID string, filter TransactionFilter) ([]models.StoredTransaction, error) {
	query := selectTransaction + ` WHERE user_id = ?`
	args := []any{userID}
	if filter.Since != "" {
		query += ` AND date >= ?`
		args = append(args, filter.Since)
	}
	if filter.Until != "" {
		query += ` AND date <= ?`
		args = append(args, filter.Until)
	}
	query += ` ORDER BY date, created_at, rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []models.StoredTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// QueryPersonalHistory returns the most recent matching record: latest date,
// then latest insert.
func (s *SQLiteStore) QueryPersonalHistory(ctx context.Context, userID, description string) (*models.StoredTransaction, error) {
	needle := strings.ToLower(strings.TrimSpace(description))
	if needle == "" {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx, selectTransaction+`
		WHERE user_id = ? AND instr(description_lower, ?) > 0
		ORDER BY date DESC, created_at DESC, rowid DESC
		LIMIT 1`, userID, needle)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// QueryGlobalHint returns the most voted hint for slug; ties go to the
// alphabetically first category.
func (s *SQLiteStore) QueryGlobalHint(ctx context.Context, slug string) (*models.GlobalHint, error) {
	var h models.GlobalHint
	err := s.db.QueryRowContext(ctx, `
		SELECT slug, category, subcategory, votes
		FROM global_hints
		WHERE slug = ?
		ORDER BY votes DESC, category ASC, subcategory ASC
		LIMIT 1`, slug).Scan(&h.Slug, &h.Category, &h.Subcategory, &h.Votes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query global hint: %w", err)
	}
	return &h, nil
}

// BulkInsert persists txs in a single SQL transaction.
func (s *SQLiteStore) BulkInsert(ctx context.Context, userID string, txs []models.Transaction) (err error) {
	if userID == "" {
		return fmt.Errorf("insert transactions: empty user id")
	}
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = dbTx.Rollback()
		}
	}()

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (
			id, user_id, date, description, description_lower, amount, type, category, subcategory, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	createdAt := s.now().UTC()
	for _, t := range txs {
		if _, err = stmt.ExecContext(ctx,
			uuid.NewString(), userID, t.Date, t.Description, strings.ToLower(t.Description),
			t.Amount.String(), string(t.Type), t.Category, t.Subcategory, createdAt,
		); err != nil {
			return fmt.Errorf("insert transaction %q: %w", t.Description, err)
		}
	}

	if err = dbTx.Commit(); err != nil {
		return fmt.Errorf("commit transactions: %w", err)
	}

	s.logger.Info("Transactions persisted",
		logging.Field{Key: logging.FieldUserID, Value: userID},
		logging.Field{Key: logging.FieldCount, Value: len(txs)})
	return nil
}

// RecordHint upserts one vote for (slug, category, subcategory).
func (s *SQLiteStore) RecordHint(ctx context.Context, slug, category, subcategory string) error {
	if slug == "" || category == "" {
		return fmt.Errorf("record hint: slug and category are required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO global_hints (slug, category, subcategory, votes, updated_at)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT (slug, category, subcategory)
		DO UPDATE SET votes = votes + 1, updated_at = excluded.updated_at`,
		slug, category, subcategory, s.now().UTC())
	if err != nil {
		return fmt.Errorf("record hint: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.StoredTransaction, error) {
	var (
		t      models.StoredTransaction
		amount string
		txType string
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Date, &t.Description, &amount, &txType,
		&t.Category, &t.Subcategory, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scan transaction: %w", err)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return t, fmt.Errorf("scan transaction %s amount %q: %w", t.ID, amount, err)
	}
	t.Amount = d
	t.Type = models.TransactionType(txType)
	return t, nil
}
