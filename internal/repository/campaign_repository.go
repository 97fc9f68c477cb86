// internal/repository/campaign_repository.go
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minicrm/campaign-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(c *model.Campaign) error
	ListByCreator(email string) ([]model.Campaign, error)
	IncrementOutcome(campaignID int, status model.LogStatus) error
}

type CampaignRepository struct {
	DB *sql.DB
}

// Create persists the campaign snapshot. Rules are stored as JSONB so the
// snapshot survives even if the rule vocabulary changes later.
func (r *CampaignRepository) Create(c *model.Campaign) error {
	rules, err := json.Marshal(c.Rules)
	if err != nil {
		return err
	}

	c.CreatedAt = time.Now()
	query := `
        INSERT INTO campaigns (name, rules, logic, audience_size, sent, failed, created_by, created_at)
        VALUES ($1, $2, $3, $4, 0, 0, $5, $6)
        RETURNING id
    `
	return r.DB.QueryRow(
		query, c.Name, rules, c.Logic, c.AudienceSize, c.CreatedBy, c.CreatedAt,
	).Scan(&c.ID)
}

// ListByCreator returns the creator's campaigns, newest first.
func (r *CampaignRepository) ListByCreator(email string) ([]model.Campaign, error) {
	query := `
        SELECT id, name, rules, logic, audience_size, sent, failed, created_by, created_at
        FROM campaigns
        WHERE lower(created_by) = lower($1)
        ORDER BY created_at DESC
    `
	rows, err := r.DB.Query(query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []model.Campaign{}
	for rows.Next() {
		var c model.Campaign
		var rules []byte
		if err := rows.Scan(
			&c.ID, &c.Name, &rules, &c.Logic, &c.AudienceSize,
			&c.Sent, &c.Failed, &c.CreatedBy, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rules, &c.Rules); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// IncrementOutcome bumps the campaign's sent or failed counter when a
// receipt lands.
func (r *CampaignRepository) IncrementOutcome(campaignID int, status model.LogStatus) error {
	var column string
	switch status {
	case model.LogStatusSent:
		column = "sent"
	case model.LogStatusFailed:
		column = "failed"
	default:
		return fmt.Errorf("no outcome counter for status %s", status)
	}

	query := fmt.Sprintf(`UPDATE campaigns SET %s = %s + 1 WHERE id = $1`, column, column)
	_, err := r.DB.Exec(query, campaignID)
	return err
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
