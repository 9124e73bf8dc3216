package in

import (
	"studyclock/internal/modules/timer/dto"
	timerin "studyclock/internal/modules/timer/port/in"
)

type TUIHandler struct {
	usecase timerin.Usecase
}

func NewTUIHandler(usecase timerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start() dto.StateOutput {
	return h.usecase.Start()
}

func (h TUIHandler) Pause() dto.StateOutput {
	return h.usecase.Pause()
}

func (h TUIHandler) Reset() dto.StateOutput {
	return h.usecase.Reset()
}

func (h TUIHandler) State() dto.StateOutput {
	return h.usecase.State()
}

func (h TUIHandler) Subscribe(fn func(dto.StateOutput)) func() {
	return h.usecase.Subscribe(fn)
}

func (h TUIHandler) Close() {
	h.usecase.Close()
}
