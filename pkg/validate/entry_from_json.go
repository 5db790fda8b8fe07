package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/calllog/internal/domain"
	"github.com/Gunvolt24/calllog/internal/ports"
)

// EntryFromJSON — строгий разбор одной записи из JSON и её валидация.
// Ошибки разбора тоже оборачивают ErrInvalidEntry: такое сообщение повторять бессмысленно.
func EntryFromJSON(ctx context.Context, validator ports.EntryValidator, raw []byte) (*domain.Entry, error) {
	var entry domain.Entry
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entry); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrInvalidEntry, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidEntry)
	}
	if err := validator.Validate(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
