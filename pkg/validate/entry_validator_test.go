package validate_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/calllog/internal/domain"
	"github.com/Gunvolt24/calllog/pkg/ctxmeta"
	"github.com/Gunvolt24/calllog/pkg/validate"
)

func validEntry() *domain.Entry {
	return &domain.Entry{
		ID:       "6f1c1a52-3f0e-4a47-9d0b-2f7f7b1f0b10",
		Time:     time.Date(2025, 11, 26, 6, 22, 19, 0, time.UTC),
		Severity: "error",
		Message:  "Worker.process: boom",
		Error:    "boom",
		TraceID:  "4bf92f3577b34da6a3ce929d0e0e4736",
		SpanID:   "00f067aa0ba902b7",
	}
}

func TestEntryValidator_Validate(t *testing.T) {
	v := validate.NewEntryValidator()
	ctx := context.Background()

	t.Run("valid entry", func(t *testing.T) {
		if err := v.Validate(ctx, validEntry()); err != nil {
			t.Fatalf("expected valid entry, got: %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(e *domain.Entry) *domain.Entry
		msg    string
	}{
		{"nil entry", func(*domain.Entry) *domain.Entry { return nil }, "запись не может быть nil"},
		{"empty id", func(e *domain.Entry) *domain.Entry { e.ID = ""; return e }, "id обязателен"},
		{"bad id", func(e *domain.Entry) *domain.Entry { e.ID = "42"; return e }, "id некорректен"},
		{"zero time", func(e *domain.Entry) *domain.Entry { e.Time = time.Time{}; return e }, "time некорректен"},
		{"old time", func(e *domain.Entry) *domain.Entry {
			e.Time = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
			return e
		}, "time некорректен"},
		{"unknown severity", func(e *domain.Entry) *domain.Entry { e.Severity = "fatal"; return e }, `severity "fatal" неизвестен`},
		{"empty message", func(e *domain.Entry) *domain.Entry { e.Message = ""; return e }, "message обязателен"},
		{"long message", func(e *domain.Entry) *domain.Entry {
			e.Message = strings.Repeat("x", validate.MaxMessageLen+1)
			return e
		}, "message длиннее"},
		{"request id with space", func(e *domain.Entry) *domain.Entry { e.RequestID = "a b"; return e }, "request_id некорректен"},
		{"request id with tab", func(e *domain.Entry) *domain.Entry { e.RequestID = "a\tb"; return e }, "request_id некорректен"},
		{"long request id", func(e *domain.Entry) *domain.Entry {
			e.RequestID = strings.Repeat("r", ctxmeta.MaxRequestIDLen+1)
			return e
		}, "request_id некорректен"},
		{"short trace id", func(e *domain.Entry) *domain.Entry { e.TraceID = "abc"; return e }, "trace_id некорректен"},
		{"non-hex span id", func(e *domain.Entry) *domain.Entry { e.SpanID = "zzzzzzzzzzzzzzzz"; return e }, "span_id некорректен"},
		{"long service", func(e *domain.Entry) *domain.Entry { e.Service = strings.Repeat("s", 129); return e }, "service некорректен"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(ctx, tc.mutate(validEntry()))
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !errors.Is(err, validate.ErrInvalidEntry) {
				t.Errorf("expected ErrInvalidEntry, got: %v", err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("expected %q in %q", tc.msg, err.Error())
			}
		})
	}
}

func TestEntryValidator_ShortSeverityAccepted(t *testing.T) {
	e := validEntry()
	e.Severity = "dbg"
	if err := validate.NewEntryValidator().Validate(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEntryValidator_RequestIDMatchesHeaderRule(t *testing.T) {
	v := validate.NewEntryValidator()
	for _, id := range []string{"req-1", "6f1c1a52-3f0e-4a47-9d0b-2f7f7b1f0b10", "a~b!c", "a b", "x\x7f", "тест"} {
		e := validEntry()
		e.RequestID = id
		err := v.Validate(context.Background(), e)
		if ctxmeta.ValidRequestID(id) != (err == nil) {
			t.Fatalf("request_id %q: header rule=%v, validator err=%v", id, ctxmeta.ValidRequestID(id), err)
		}
	}
}
