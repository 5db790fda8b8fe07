package ports

import (
	"context"

	"github.com/Gunvolt24/calllog/internal/domain"
)

// EntryRepository — хранилище записей журнала.
type EntryRepository interface {
	// Save — сохранить запись; повторное сохранение того же ID не создаёт дубликат.
	Save(ctx context.Context, entry *domain.Entry) error
	// List — последние записи (новые первыми) с учётом фильтра.
	List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error)
}
