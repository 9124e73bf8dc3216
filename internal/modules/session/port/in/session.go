package in

import (
	"context"

	"studyclock/internal/modules/session/dto"
)

type Usecase interface {
	RecordCompletion(ctx context.Context, input dto.CompleteInput) (dto.RecordOutput, error)
	History(ctx context.Context) ([]dto.RecordOutput, error)
	DeleteAt(ctx context.Context, index int) error
	DeleteAll(ctx context.Context) error
	Summary(ctx context.Context, date string) (dto.SummaryOutput, error)
	Export(ctx context.Context) (dto.ExportOutput, error)
}
