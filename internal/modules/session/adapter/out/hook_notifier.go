package out

import (
	"context"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	hookdto "studyclock/internal/modules/hook/dto"
	hookin "studyclock/internal/modules/hook/port/in"
	"studyclock/internal/modules/session/domain"
	sessionout "studyclock/internal/modules/session/port/out"
)

const defaultHookTimeout = 10 * time.Second

// HookNotifier forwards recorded sessions to the hook module. Delivery runs
// in the background so a slow hook never stalls the timer.
type HookNotifier struct {
	hooks   hookin.Usecase
	timeout time.Duration
	log     hclog.Logger
	wg      sync.WaitGroup
}

func NewHookNotifier(hooks hookin.Usecase, timeout time.Duration, log hclog.Logger) *HookNotifier {
	if timeout <= 0 {
		timeout = defaultHookTimeout
	}
	return &HookNotifier{hooks: hooks, timeout: timeout, log: log}
}

var _ sessionout.Notifier = (*HookNotifier)(nil)

func (n *HookNotifier) SessionRecorded(_ context.Context, record domain.Indexed) error {
	input := hookdto.SessionEventInput{
		Index:    record.Index,
		Date:     record.Date,
		Time:     record.Time,
		Duration: record.Duration,
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		deliveries, err := n.hooks.DispatchSessionRecorded(ctx, input)
		if err != nil {
			n.log.Warn("session hooks not dispatched", "error", err)
			return
		}
		for _, d := range deliveries {
			if d.Error != "" {
				n.log.Warn("session hook failed", "hook", d.HookName, "error", d.Error)
			}
		}
	}()
	return nil
}

// Wait blocks until in-flight deliveries finish.
func (n *HookNotifier) Wait() {
	n.wg.Wait()
}
