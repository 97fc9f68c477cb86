package delivery_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/minicrm/campaign-backend/internal/delivery"
	"github.com/minicrm/campaign-backend/internal/model"
)

// countingSink records receipts and lets tests wait for a known number.
type countingSink struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	receipts map[string]model.LogStatus
}

func newCountingSink(expected int) *countingSink {
	s := &countingSink{receipts: map[string]model.LogStatus{}}
	s.wg.Add(expected)
	return s
}

func (s *countingSink) Deliver(r delivery.Receipt) error {
	s.mu.Lock()
	s.receipts[r.LogID] = r.Status
	s.mu.Unlock()
	s.wg.Done()
	return nil
}

func (s *countingSink) wait(t *testing.T, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("timed out waiting for receipts")
	}
}

func TestEveryDispatchReachesTerminalStatus(t *testing.T) {
	const n = 100
	sink := newCountingSink(n)
	backend := delivery.NewSimulatedBackend(time.Millisecond, 3*time.Millisecond, 0.9, sink)

	for i := 0; i < n; i++ {
		d := delivery.Dispatch{
			LogID:          fmt.Sprintf("log-%d", i),
			Message:        "hello",
			RecipientEmail: "x@x.com",
		}
		if err := backend.Send(d); err != nil {
			t.Fatal(err)
		}
	}

	sink.wait(t, 2*time.Second)

	if len(sink.receipts) != n {
		t.Fatalf("expected %d receipts, got %d", n, len(sink.receipts))
	}
	for id, status := range sink.receipts {
		if status != model.LogStatusSent && status != model.LogStatusFailed {
			t.Errorf("log %s ended with non-terminal status %s", id, status)
		}
	}
}

func TestSentRatioTracksSuccessRate(t *testing.T) {
	const n = 2000
	sink := newCountingSink(n)
	backend := delivery.NewSimulatedBackend(0, time.Millisecond, 0.9, sink)

	for i := 0; i < n; i++ {
		backend.Send(delivery.Dispatch{LogID: fmt.Sprintf("log-%d", i)})
	}
	sink.wait(t, 5*time.Second)

	sent := 0
	for _, status := range sink.receipts {
		if status == model.LogStatusSent {
			sent++
		}
	}
	ratio := float64(sent) / float64(n)
	// binomial sd at n=2000 is ~0.0067, a 0.05 band is far outside noise
	if ratio < 0.85 || ratio > 0.95 {
		t.Errorf("sent ratio %f strayed from 0.9", ratio)
	}
}

func TestSuccessRateExtremes(t *testing.T) {
	sink := newCountingSink(10)
	always := delivery.NewSimulatedBackend(0, 0, 1.0, sink)
	for i := 0; i < 10; i++ {
		always.Send(delivery.Dispatch{LogID: fmt.Sprintf("up-%d", i)})
	}
	sink.wait(t, time.Second)
	for id, status := range sink.receipts {
		if status != model.LogStatusSent {
			t.Errorf("rate 1.0 must always send, %s got %s", id, status)
		}
	}

	sink = newCountingSink(10)
	never := delivery.NewSimulatedBackend(0, 0, 0.0, sink)
	for i := 0; i < 10; i++ {
		never.Send(delivery.Dispatch{LogID: fmt.Sprintf("down-%d", i)})
	}
	sink.wait(t, time.Second)
	for id, status := range sink.receipts {
		if status != model.LogStatusFailed {
			t.Errorf("rate 0.0 must always fail, %s got %s", id, status)
		}
	}
}

func TestConcurrentDispatchesDoNotCrossTalk(t *testing.T) {
	const n = 200
	sink := newCountingSink(n)
	backend := delivery.NewSimulatedBackend(0, 2*time.Millisecond, 0.9, sink)

	var wg sync.WaitGroup
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < n/10; i++ {
				backend.Send(delivery.Dispatch{LogID: fmt.Sprintf("log-%d-%d", w, i)})
			}
		}(w)
	}
	wg.Wait()

	sink.wait(t, 2*time.Second)
	if len(sink.receipts) != n {
		t.Errorf("expected %d distinct receipts, got %d", n, len(sink.receipts))
	}
}
