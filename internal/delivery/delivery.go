// internal/delivery/delivery.go

// Package delivery models the vendor boundary. The orchestrator hands a
// Dispatch to a Backend and forgets about it; the backend eventually
// reports the terminal outcome through a ReceiptSink.
package delivery

import "github.com/minicrm/campaign-backend/internal/model"

// Dispatch is one personalized message headed to the vendor.
type Dispatch struct {
	LogID          string `json:"logId"`
	Message        string `json:"message"`
	RecipientEmail string `json:"customerEmail"`
}

// Receipt is the vendor's terminal outcome report for one dispatch.
type Receipt struct {
	LogID  string          `json:"logId"`
	Status model.LogStatus `json:"status"`
}

// Backend sends a dispatch toward the vendor. Send must return quickly;
// the outcome always arrives later through a receipt.
type Backend interface {
	Send(d Dispatch) error
}

// ReceiptSink receives terminal outcomes from a backend.
type ReceiptSink interface {
	Deliver(r Receipt) error
}

// FuncSink adapts a plain function into a ReceiptSink.
type FuncSink func(r Receipt) error

func (f FuncSink) Deliver(r Receipt) error { return f(r) }
