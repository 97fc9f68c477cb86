// internal/model/campaign.go
package model

import "time"

// Rule is a single field/operator/value comparison used to filter customers.
// Operator is one of >, <, >=, <=, ==, !=.
type Rule struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Campaign is an immutable snapshot of the selection criteria plus the
// audience size computed at creation time. Only the sent/failed counters
// change after insert.
type Campaign struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Rules        []Rule    `db:"rules" json:"rules"`
	Logic        string    `db:"logic" json:"logic"`
	AudienceSize int       `db:"audience_size" json:"audienceSize"`
	Sent         int       `db:"sent" json:"sent"`
	Failed       int       `db:"failed" json:"failed"`
	CreatedBy    string    `db:"created_by" json:"createdBy"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
