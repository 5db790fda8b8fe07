package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/calllog/internal/domain"
	"github.com/Gunvolt24/calllog/internal/ports"
)

// Проверка, что EntryRepository удовлетворяет интерфейсу EntryRepository.
var _ ports.EntryRepository = (*EntryRepository)(nil)

// DefaultListLimit — размер выборки, если лимит не задан.
const DefaultListLimit = 50

// EntryRepository — хранилище записей журнала на Postgres (pgxpool).
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository — конструктор EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository { return &EntryRepository{pool: pool} }

// Save — идемпотентная вставка по id: повторная доставка из Kafka не создаёт дубликат.
func (r *EntryRepository) Save(ctx context.Context, entry *domain.Entry) error {
	if entry == nil || entry.ID == "" {
		return errors.New("entry is empty or id is required")
	}

	if _, err := r.pool.Exec(ctx, `
		INSERT INTO log_entries (
			id, logged_at, severity, message, error, request_id, trace_id, span_id, service
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`,
		entry.ID, entry.Time, entry.Severity, entry.Message, entry.Error,
		entry.RequestID, entry.TraceID, entry.SpanID, entry.Service,
	); err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

// List — последние записи, новые первыми; пустой Severity — все уровни.
func (r *EntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	offset := max(filter.Offset, 0)

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, logged_at, severity, message, error, request_id, trace_id, span_id, service
		FROM log_entries
		WHERE ($1::text = '' OR severity = $1::text)
		ORDER BY logged_at DESC, id
		LIMIT $2 OFFSET $3
	`, filter.Severity, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select log entries: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Entry, error) {
		var e domain.Entry
		if scanErr := row.Scan(
			&e.ID, &e.Time, &e.Severity, &e.Message, &e.Error,
			&e.RequestID, &e.TraceID, &e.SpanID, &e.Service,
		); scanErr != nil {
			return nil, scanErr
		}
		e.Time = e.Time.UTC()
		return &e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan log entries: %w", err)
	}
	return entries, nil
}
