//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/calllog/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeEntry — валидная уникальная запись журнала.
func MakeEntry(opts ...func(*domain.Entry)) domain.Entry {
	e := domain.Entry{
		ID:        uuid.NewString(),
		Time:      time.Now().UTC().Truncate(time.Millisecond),
		Severity:  "info",
		Message:   "Worker.load: Starting. {id: \"" + UniqSuffix() + "\"}",
		RequestID: "req-" + UniqSuffix(),
		Service:   "itest",
	}
	for _, fn := range opts {
		fn(&e)
	}
	return e
}

// WithSeverity — переопределить уровень записи.
func WithSeverity(severity string) func(*domain.Entry) {
	return func(e *domain.Entry) { e.Severity = severity }
}

// WithTime — переопределить время записи.
func WithTime(t time.Time) func(*domain.Entry) {
	return func(e *domain.Entry) { e.Time = t.UTC().Truncate(time.Millisecond) }
}
