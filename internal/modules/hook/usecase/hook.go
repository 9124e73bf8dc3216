package usecase

import (
	"context"

	"studyclock/internal/modules/hook/dto"
	hookin "studyclock/internal/modules/hook/port/in"
	"studyclock/internal/modules/hook/service"
)

type Interactor struct {
	svc *service.HookService
}

func NewInteractor(svc *service.HookService) hookin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.HookInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) DispatchSessionRecorded(ctx context.Context, input dto.SessionEventInput) ([]dto.DeliveryOutput, error) {
	return i.svc.DispatchSessionRecorded(ctx, input)
}
