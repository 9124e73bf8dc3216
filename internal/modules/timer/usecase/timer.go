package usecase

import (
	"studyclock/internal/modules/timer/domain"
	"studyclock/internal/modules/timer/dto"
	timerin "studyclock/internal/modules/timer/port/in"
	"studyclock/internal/modules/timer/service"
)

type Interactor struct {
	timer *service.PhaseTimer
}

func NewInteractor(timer *service.PhaseTimer) timerin.Usecase {
	return &Interactor{timer: timer}
}

func (i *Interactor) Start() dto.StateOutput {
	return i.toOutput(i.timer.Start())
}

func (i *Interactor) Pause() dto.StateOutput {
	return i.toOutput(i.timer.Pause())
}

func (i *Interactor) Reset() dto.StateOutput {
	return i.toOutput(i.timer.Reset())
}

func (i *Interactor) State() dto.StateOutput {
	return i.toOutput(i.timer.Snapshot())
}

func (i *Interactor) Subscribe(fn func(dto.StateOutput)) func() {
	return i.timer.Subscribe(func(s domain.State) {
		fn(i.toOutput(s))
	})
}

func (i *Interactor) Close() {
	i.timer.Close()
}

func (i *Interactor) toOutput(s domain.State) dto.StateOutput {
	return dto.StateOutput{
		Phase:     s.Phase.String(),
		Remaining: s.Remaining,
		Total:     i.timer.Durations().Seconds(s.Phase),
		Clock:     domain.FormatClock(s.Remaining),
		Running:   s.Running,
		StartedAt: s.StartedAt,
	}
}
