// internal/queue/queue.go
package queue

import (
	"fmt"
	"log"
	"sync"

	"github.com/minicrm/campaign-backend/internal/delivery"
	"github.com/minicrm/campaign-backend/internal/metrics"
)

// TopicVendorDispatch carries per-customer delivery jobs from the
// campaign orchestrator to the vendor backend.
const TopicVendorDispatch = "vendor_dispatches"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is a process-local pub/sub queue. Each published job is
// handled on its own goroutine so publishers never wait on handlers.
// There is no retry: a failed delivery outcome is terminal in this flow.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// Publish sends a message to all subscribers without awaiting them.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		h := handler
		go func() {
			if err := h(payload); err != nil {
				log.Printf("⚠️ job on topic %s failed: %v\n", topic, err)
			}
		}()
	}
	return nil
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartVendorDispatchSubscriber hands queued dispatches to the delivery
// backend. The campaign orchestrator only ever talks to the queue, so the
// HTTP response for campaign creation never waits on the vendor.
func StartVendorDispatchSubscriber(q Queue, backend delivery.Backend) {
	err := q.Subscribe(TopicVendorDispatch, func(payload any) error {
		dispatch, ok := payload.(delivery.Dispatch)
		if !ok {
			log.Println("⚠️ invalid payload type, expected delivery.Dispatch")
			return nil
		}

		metrics.DispatchesTotal.Inc()
		if err := backend.Send(dispatch); err != nil {
			log.Println("⚠️ vendor send failed for log", dispatch.LogID, ":", err)
			return err
		}
		return nil
	})
	if err != nil {
		log.Println("⚠️ failed to start subscriber for", TopicVendorDispatch, ":", err)
	}
}
