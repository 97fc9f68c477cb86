// internal/model/customer.go
package model

import "time"

type Customer struct {
	ID         int        `db:"id" json:"id"`
	Name       string     `db:"name" json:"name" validate:"required"`
	Email      string     `db:"email" json:"email" validate:"required,email"`
	Phone      string     `db:"phone" json:"phone"`
	Address    string     `db:"address" json:"address"`
	Spend      float64    `db:"spend" json:"spend"`
	Visits     int        `db:"visits" json:"visits"`
	LastActive *time.Time `db:"last_active" json:"lastActive,omitempty"`
	AddedBy    string     `db:"added_by" json:"addedBy" validate:"required"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}
