package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/calllog/internal/domain"
	"github.com/Gunvolt24/calllog/internal/ports/mocks"
	"github.com/Gunvolt24/calllog/internal/usecase"
	"github.com/Gunvolt24/calllog/pkg/validate"
)

const rawEntry = `{"id":"6f1c1a52-3f0e-4a47-9d0b-2f7f7b1f0b10","time":"2025-11-26T06:22:19Z","severity":"error","message":"Worker.process: boom","error":"boom"}`

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func TestSaveFromMessage_InvalidJson(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)
	validator := mocks.NewMockEntryValidator(ctrl)

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	svc := usecase.NewEntryService(repo, noopLogger{}, validator)
	err := svc.SaveFromMessage(context.Background(), []byte("{"))
	if err == nil || !strings.Contains(err.Error(), "invalid json") {
		t.Fatalf("expected invalid json error, got err=%v", err)
	}
	if !errors.Is(err, validate.ErrInvalidEntry) {
		t.Fatalf("invalid json must be permanent, got %v", err)
	}
}

func TestSaveFromMessage_ValidationFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)
	validator := mocks.NewMockEntryValidator(ctrl)

	validator.EXPECT().Validate(gomock.Any(), gomock.AssignableToTypeOf(&domain.Entry{})).Return(validate.ErrInvalidEntry)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	svc := usecase.NewEntryService(repo, noopLogger{}, validator)
	if err := svc.SaveFromMessage(context.Background(), []byte(rawEntry)); !errors.Is(err, validate.ErrInvalidEntry) {
		t.Fatalf("want wrapped ErrInvalidEntry, got %v", err)
	}
}

func TestSaveFromMessage_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)
	validator := mocks.NewMockEntryValidator(ctrl)
	log := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil),
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *domain.Entry) error {
				if e.Message != "Worker.process: boom" || e.Error != "boom" {
					t.Fatalf("unexpected entry: %+v", e)
				}
				return nil
			}),
	)

	svc := usecase.NewEntryService(repo, log, validator)
	if err := svc.SaveFromMessage(context.Background(), []byte(rawEntry)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSaveFromMessage_RepoError_IsTemporary(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)
	validator := mocks.NewMockEntryValidator(ctrl)
	log := mocks.NewMockLogger(ctrl)

	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	log.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())

	svc := usecase.NewEntryService(repo, log, validator)
	err := svc.SaveFromMessage(context.Background(), []byte(rawEntry))
	if err == nil || errors.Is(err, validate.ErrInvalidEntry) {
		t.Fatalf("want temporary error, got %v", err)
	}
}

func TestRecent_NormalizesSeverity(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)

	want := []*domain.Entry{{ID: "1"}}
	repo.EXPECT().List(gomock.Any(), domain.EntryFilter{Severity: "error", Limit: 10}).Return(want, nil)

	svc := usecase.NewEntryService(repo, noopLogger{}, mocks.NewMockEntryValidator(ctrl))
	got, err := svc.Recent(context.Background(), domain.EntryFilter{Severity: "ERR", Limit: 10})
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected result: %v %v", got, err)
	}
}

func TestRecent_InvalidFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	svc := usecase.NewEntryService(repo, noopLogger{}, mocks.NewMockEntryValidator(ctrl))

	for name, f := range map[string]domain.EntryFilter{
		"severity": {Severity: "fatal"},
		"limit":    {Limit: usecase.MaxListLimit + 1},
		"negative": {Limit: -1},
		"offset":   {Offset: -1},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Recent(context.Background(), f); !errors.Is(err, usecase.ErrInvalidFilter) {
				t.Fatalf("want ErrInvalidFilter, got %v", err)
			}
		})
	}
}

func TestRecent_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	svc := usecase.NewEntryService(repo, noopLogger{}, mocks.NewMockEntryValidator(ctrl))
	if _, err := svc.Recent(context.Background(), domain.EntryFilter{}); err == nil {
		t.Fatalf("expected error")
	}
}
