// internal/repository/log_repository.go
package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/minicrm/campaign-backend/internal/errors"
	"github.com/minicrm/campaign-backend/internal/model"
)

type LogRepositoryInterface interface {
	Create(l *model.CommunicationLog) error
	UpdateStatus(id string, status model.LogStatus) (campaignID int, err error)
	ListByCampaign(campaignID int) ([]model.CommunicationLog, error)
}

type LogRepository struct {
	DB *sql.DB
}

// Create inserts a PENDING log row. IDs are generated app-side so the
// logId handed to the vendor is an opaque string.
func (r *LogRepository) Create(l *model.CommunicationLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = model.LogStatusPending
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	query := `
        INSERT INTO communication_logs
        (id, campaign_id, customer_id, customer_name, customer_email, message, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.DB.Exec(
		query,
		l.ID, l.CampaignID, l.CustomerID, l.CustomerName, l.CustomerEmail,
		l.Message, l.Status, l.CreatedAt, l.UpdatedAt,
	)
	return err
}

// UpdateStatus flips the log to its terminal status and reports which
// campaign it belongs to, so the caller can bump the outcome counters.
// An unknown id is a NotFoundError, never silently swallowed.
func (r *LogRepository) UpdateStatus(id string, status model.LogStatus) (int, error) {
	query := `
        UPDATE communication_logs
        SET status = $1, updated_at = $2
        WHERE id = $3
        RETURNING campaign_id
    `
	var campaignID int
	err := r.DB.QueryRow(query, status, time.Now(), id).Scan(&campaignID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, appErrors.NewNotFound("communication log", id)
		}
		return 0, err
	}
	return campaignID, nil
}

// ListByCampaign returns a campaign's logs, newest first.
func (r *LogRepository) ListByCampaign(campaignID int) ([]model.CommunicationLog, error) {
	query := `
        SELECT id, campaign_id, customer_id, customer_name, customer_email, message, status, created_at, updated_at
        FROM communication_logs
        WHERE campaign_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []model.CommunicationLog{}
	for rows.Next() {
		var l model.CommunicationLog
		if err := rows.Scan(
			&l.ID, &l.CampaignID, &l.CustomerID, &l.CustomerName, &l.CustomerEmail,
			&l.Message, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

var _ LogRepositoryInterface = (*LogRepository)(nil)
