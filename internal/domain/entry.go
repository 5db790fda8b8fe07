package domain

import "time"

// Entry — запись журнала в том виде, в каком она уходит в Kafka и хранится в Postgres.
// Message — уже синтезированная фасадом строка; Error — текст ошибки, если она была.
type Entry struct {
	ID        string    `json:"id"`
	Time      time.Time `json:"time"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	TraceID   string    `json:"trace_id,omitempty"`
	SpanID    string    `json:"span_id,omitempty"`
	Service   string    `json:"service,omitempty"`
}

// EntryFilter — выборка последних записей: пустой Severity — все уровни.
type EntryFilter struct {
	Severity string
	Limit    int
	Offset   int
}
