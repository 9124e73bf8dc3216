package in

import (
	"context"

	"studyclock/internal/modules/session/dto"
	sessionin "studyclock/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) History(ctx context.Context) ([]dto.RecordOutput, error) {
	return h.usecase.History(ctx)
}

func (h CLIHandler) Delete(ctx context.Context, index int) error {
	return h.usecase.DeleteAt(ctx, index)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.DeleteAll(ctx)
}

func (h CLIHandler) Stats(ctx context.Context, date string) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx, date)
}

func (h CLIHandler) Export(ctx context.Context) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx)
}
