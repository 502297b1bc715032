package hook

import (
	"time"

	"github.com/joeycumines/go-fibernet/fiber"
	"github.com/joeycumines/go-fibernet/ioruntime"
	"github.com/joeycumines/go-fibernet/scheduler"
)

// Sleep parks the calling fiber for d without blocking the underlying
// goroutine, the Go analogue of the original's hooked sleep/usleep/
// nanosleep: arm a timer that reschedules this fiber, then
// fiber.YieldToHold. Falls back to time.Sleep if no ioruntime.Manager
// has been adopted on the calling goroutine.
func Sleep(d time.Duration) {
	iom := ioruntime.GetThis()
	if iom == nil {
		time.Sleep(d)
		return
	}
	if d <= 0 {
		return
	}

	self := fiber.ThisFiber()
	iom.Timers.AddTimer(uint64(d.Milliseconds()), func() {
		iom.Schedule(self, scheduler.AnyThread)
	}, false)
	fiber.YieldToHold()
}
