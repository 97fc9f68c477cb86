// internal/delivery/simulator.go
package delivery

import (
	"log"
	"math/rand"
	"time"

	"github.com/minicrm/campaign-backend/internal/model"
)

// SimulatedBackend stands in for a third-party vendor. Every dispatch
// resolves independently after a uniform random delay with a weighted
// coin flip, so concurrent dispatches never interfere. Timers are not
// cancellable: outcomes pending at process exit are lost. That is a
// known gap of the mock vendor, not something this code papers over.
type SimulatedBackend struct {
	MinDelay    time.Duration
	MaxDelay    time.Duration
	SuccessRate float64
	Sink        ReceiptSink
}

func NewSimulatedBackend(minDelay, maxDelay time.Duration, successRate float64, sink ReceiptSink) *SimulatedBackend {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &SimulatedBackend{
		MinDelay:    minDelay,
		MaxDelay:    maxDelay,
		SuccessRate: successRate,
		Sink:        sink,
	}
}

// Send schedules the simulated outcome and returns immediately.
func (b *SimulatedBackend) Send(d Dispatch) error {
	time.AfterFunc(b.randomDelay(), func() {
		receipt := Receipt{LogID: d.LogID, Status: b.flip()}
		if err := b.Sink.Deliver(receipt); err != nil {
			log.Println("⚠️ failed to report receipt for log", d.LogID, ":", err)
		}
	})
	return nil
}

func (b *SimulatedBackend) randomDelay() time.Duration {
	spread := b.MaxDelay - b.MinDelay
	if spread <= 0 {
		return b.MinDelay
	}
	return b.MinDelay + time.Duration(rand.Int63n(int64(spread)))
}

func (b *SimulatedBackend) flip() model.LogStatus {
	if rand.Float64() < b.SuccessRate {
		return model.LogStatusSent
	}
	return model.LogStatusFailed
}
