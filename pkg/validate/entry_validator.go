package validate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Gunvolt24/calllog/internal/domain"
	"github.com/Gunvolt24/calllog/internal/ports"
	"github.com/Gunvolt24/calllog/pkg/calllog"
	"github.com/Gunvolt24/calllog/pkg/ctxmeta"
)

// Проверка, что EntryValidator удовлетворяет интерфейсу EntryValidator.
var _ ports.EntryValidator = (*EntryValidator)(nil)

// ErrInvalidEntry — базовая (sentinel error) ошибка валидации.
var ErrInvalidEntry = errors.New("entry validation failed")

// MaxMessageLen — предел длины синтезированного сообщения.
const MaxMessageLen = 64 * 1024

// EntryValidator — валидация записи журнала.
type EntryValidator struct {
	fields *validator.Validate
}

// NewEntryValidator — конструктор EntryValidator.
// Возвращает ErrInvalidEntry (с обёрнутой причиной) при любой проблеме.
func NewEntryValidator() *EntryValidator {
	fields := validator.New(validator.WithRequiredStructEnabled())
	// то же правило, что у X-Request-ID в HTTP-слое
	_ = fields.RegisterValidation("requestid", func(fl validator.FieldLevel) bool {
		return ctxmeta.ValidRequestID(fl.Field().String())
	})
	return &EntryValidator{fields: fields}
}

// Validate — проверяет корректность полей записи.
func (v *EntryValidator) Validate(_ context.Context, entry *domain.Entry) error {
	if err := v.validateCore(entry); err != nil {
		return err
	}
	if err := v.validateMessage(entry); err != nil {
		return err
	}
	return v.validateCorrelation(entry)
}

// validateCore — id, время и уровень.
func (v *EntryValidator) validateCore(entry *domain.Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: запись не может быть nil", ErrInvalidEntry)
	}
	if entry.ID == "" {
		return fmt.Errorf("%w: id обязателен", ErrInvalidEntry)
	}
	if _, err := uuid.Parse(entry.ID); err != nil {
		return fmt.Errorf("%w: id некорректен", ErrInvalidEntry)
	}
	if entry.Time.IsZero() || entry.Time.Before(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)) {
		return fmt.Errorf("%w: time некорректен", ErrInvalidEntry)
	}
	if _, ok := calllog.ParseSeverity(entry.Severity); !ok {
		return fmt.Errorf("%w: severity %q неизвестен", ErrInvalidEntry, entry.Severity)
	}
	return nil
}

// Валидация сообщения
func (v *EntryValidator) validateMessage(entry *domain.Entry) error {
	if entry.Message == "" {
		return fmt.Errorf("%w: message обязателен", ErrInvalidEntry)
	}
	if len(entry.Message) > MaxMessageLen {
		return fmt.Errorf("%w: message длиннее %d байт", ErrInvalidEntry, MaxMessageLen)
	}
	return nil
}

// correlationRules — необязательные поля корреляции; trace/span id в hex-форме OpenTelemetry.
var correlationRules = []struct {
	name  string
	value func(*domain.Entry) string
	tag   string
}{
	{"request_id", func(e *domain.Entry) string { return e.RequestID }, "omitempty,requestid"},
	{"trace_id", func(e *domain.Entry) string { return e.TraceID }, "omitempty,len=32,hexadecimal"},
	{"span_id", func(e *domain.Entry) string { return e.SpanID }, "omitempty,len=16,hexadecimal"},
	{"service", func(e *domain.Entry) string { return e.Service }, "omitempty,max=128"},
}

func (v *EntryValidator) validateCorrelation(entry *domain.Entry) error {
	for _, rule := range correlationRules {
		if err := v.fields.Var(rule.value(entry), rule.tag); err != nil {
			return fmt.Errorf("%w: %s некорректен", ErrInvalidEntry, rule.name)
		}
	}
	return nil
}
