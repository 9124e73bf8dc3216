package dto

import "time"

type StateOutput struct {
	Phase     string
	Remaining int
	Total     int
	Clock     string
	Running   bool
	StartedAt *time.Time
}
