// internal/model/communication_log.go
package model

import "time"

type LogStatus string

const (
	LogStatusPending LogStatus = "PENDING"
	LogStatusSent    LogStatus = "SENT"
	LogStatusFailed  LogStatus = "FAILED"
)

// CommunicationLog is one row per (campaign, customer). Customer name and
// email are denormalized so the row stays readable if the customer record
// is later changed or deleted.
type CommunicationLog struct {
	ID            string    `db:"id" json:"id"`
	CampaignID    int       `db:"campaign_id" json:"campaignId"`
	CustomerID    int       `db:"customer_id" json:"customerId"`
	CustomerName  string    `db:"customer_name" json:"customerName"`
	CustomerEmail string    `db:"customer_email" json:"customerEmail"`
	Message       string    `db:"message" json:"message"`
	Status        LogStatus `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
