package in

import (
	"context"

	"studyclock/internal/modules/hook/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.HookInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	DispatchSessionRecorded(ctx context.Context, input dto.SessionEventInput) ([]dto.DeliveryOutput, error)
}
