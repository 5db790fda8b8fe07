package ports

import (
	"context"

	"github.com/Gunvolt24/calllog/internal/domain"
)

// EntryReadService — сервис чтения записей журнала для HTTP.
type EntryReadService interface {
	Recent(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error)
}
