// internal/delivery/receipt.go
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// HTTPReceiptSink posts receipts back to the delivery receipt endpoint,
// the same callback loop a real vendor would run. A rate limiter keeps a
// large campaign's timers from hammering the endpoint all at once.
type HTTPReceiptSink struct {
	URL     string
	Client  *http.Client
	Limiter *rate.Limiter
}

func NewHTTPReceiptSink(url string) *HTTPReceiptSink {
	return &HTTPReceiptSink{
		URL:     url,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Limiter: rate.NewLimiter(rate.Limit(50), 10),
	}
}

func (s *HTTPReceiptSink) Deliver(r Receipt) error {
	if err := s.Limiter.Wait(context.Background()); err != nil {
		return err
	}

	body, err := json.Marshal(r)
	if err != nil {
		return err
	}

	resp, err := s.Client.Post(s.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("receipt endpoint returned %d for log %s", resp.StatusCode, r.LogID)
	}
	return nil
}
