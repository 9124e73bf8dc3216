package in

import "studyclock/internal/modules/timer/dto"

type Usecase interface {
	Start() dto.StateOutput
	Pause() dto.StateOutput
	Reset() dto.StateOutput
	State() dto.StateOutput
	// Subscribe registers fn for every state change and returns a func that
	// removes it. fn must not block or call back into the timer.
	Subscribe(fn func(dto.StateOutput)) func()
	Close()
}
