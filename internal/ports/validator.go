package ports

import (
	"context"

	"github.com/Gunvolt24/calllog/internal/domain"
)

type EntryValidator interface {
	Validate(ctx context.Context, entry *domain.Entry) error
}
