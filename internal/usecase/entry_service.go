package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/calllog/internal/domain"
	"github.com/Gunvolt24/calllog/internal/ports"
	"github.com/Gunvolt24/calllog/pkg/calllog"
	"github.com/Gunvolt24/calllog/pkg/validate"
)

var _ ports.EntryReadService = (*EntryService)(nil)

// ErrInvalidFilter — некорректные параметры выборки.
var ErrInvalidFilter = errors.New("invalid entry filter")

// MaxListLimit — верхняя граница размера выборки.
const MaxListLimit = 500

// EntryService — приём и чтение записей журнала (без знаний о транспорте).
type EntryService struct {
	repo      ports.EntryRepository
	log       ports.Logger
	validator ports.EntryValidator
}

// NewEntryService — DI-конструктор.
func NewEntryService(repo ports.EntryRepository, log ports.Logger, validator ports.EntryValidator) *EntryService {
	return &EntryService{repo: repo, log: log, validator: validator}
}

// SaveFromMessage — сохранить запись, пришедшую из Kafka (raw JSON).
// Строгий разбор и валидация дают ошибку с validate.ErrInvalidEntry; ошибки БД — временные.
func (s *EntryService) SaveFromMessage(ctx context.Context, raw []byte) error {
	entry, err := validate.EntryFromJSON(ctx, s.validator, raw)
	if err != nil {
		s.log.Warnf(ctx, "rejected log entry err=%v", err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		s.log.Errorf(ctx, "repo.Save failed id=%s err=%v", entry.ID, err)
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

// Recent — последние записи. Уровень приводится к каноническому виду (err → error),
// лимит: 0 — по умолчанию, больше MaxListLimit — ошибка.
func (s *EntryService) Recent(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	if filter.Severity != "" {
		sev, ok := calllog.ParseSeverity(filter.Severity)
		if !ok {
			return nil, fmt.Errorf("%w: unknown severity %q", ErrInvalidFilter, filter.Severity)
		}
		filter.Severity = sev.String()
	}
	if filter.Limit < 0 || filter.Limit > MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be in [0, %d]", ErrInvalidFilter, MaxListLimit)
	}
	if filter.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must be non-negative", ErrInvalidFilter)
	}

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Errorf(ctx, "repo.List failed err=%v", err)
		return nil, err
	}
	return entries, nil
}
