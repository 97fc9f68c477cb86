// internal/service/campaign_service.go
package service

import (
	"fmt"
	"log"

	"github.com/minicrm/campaign-backend/internal/delivery"
	appErrors "github.com/minicrm/campaign-backend/internal/errors"
	"github.com/minicrm/campaign-backend/internal/metrics"
	"github.com/minicrm/campaign-backend/internal/model"
	"github.com/minicrm/campaign-backend/internal/query"
	"github.com/minicrm/campaign-backend/internal/queue"
	"github.com/minicrm/campaign-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	CustomerRepo repository.CustomerRepositoryInterface
	LogRepo      repository.LogRepositoryInterface
	Queue        queue.Queue
}

// PreviewAudience computes the audience count for a rule set without
// persisting anything. Same owner scoping as a real send.
func (s *CampaignService) PreviewAudience(rules []model.Rule, logic, owner string) (int, error) {
	return s.CustomerRepo.CountMatching(owner, query.Build(rules, logic))
}

// CreateCampaign resolves the audience, persists the campaign snapshot,
// writes one PENDING log per audience member and queues each message for
// the vendor. The response never waits on a delivery outcome: by the time
// this returns, the campaign and all its logs exist and every status is
// eventually-consistent.
func (s *CampaignService) CreateCampaign(name string, rules []model.Rule, logic, owner string) (*model.Campaign, error) {
	audience, err := s.CustomerRepo.FindMatching(owner, query.Build(rules, logic))
	if err != nil {
		return nil, err
	}

	campaign := &model.Campaign{
		Name:         name,
		Rules:        rules,
		Logic:        logic,
		AudienceSize: len(audience),
		CreatedBy:    owner,
	}
	// no campaign row, no logs: abort before any fan-out
	if err := s.CampaignRepo.Create(campaign); err != nil {
		return nil, err
	}

	for _, customer := range audience {
		message := renderGreeting(customer.Name)

		logRow := &model.CommunicationLog{
			CampaignID:    campaign.ID,
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			Message:       message,
			Status:        model.LogStatusPending,
		}
		if err := s.LogRepo.Create(logRow); err != nil {
			log.Println("⚠️ failed to create log for customer", customer.ID, ":", err)
			continue
		}

		dispatch := delivery.Dispatch{
			LogID:          logRow.ID,
			Message:        message,
			RecipientEmail: customer.Email,
		}
		if err := s.Queue.Publish(queue.TopicVendorDispatch, dispatch); err != nil {
			log.Println("⚠️ failed to queue dispatch for log", logRow.ID, ":", err)
			continue
		}
	}

	return campaign, nil
}

func renderGreeting(name string) string {
	return fmt.Sprintf("Hi %s, here's 10%% off on your next order!", name)
}

// ListCampaigns returns the creator's campaigns, newest first.
func (s *CampaignService) ListCampaigns(email string) ([]model.Campaign, error) {
	return s.CampaignRepo.ListByCreator(email)
}

// ListLogs returns a campaign's communication logs, newest first.
func (s *CampaignService) ListLogs(campaignID int) ([]model.CommunicationLog, error) {
	return s.LogRepo.ListByCampaign(campaignID)
}

// HandleReceipt records a terminal delivery outcome. An unknown logId is
// a NotFoundError surfaced to the caller. Duplicate receipts overwrite
// the status and double-count the campaign counter; acceptable while the
// vendor sends at most one receipt per dispatch.
func (s *CampaignService) HandleReceipt(logID string, status model.LogStatus) error {
	if status != model.LogStatusSent && status != model.LogStatusFailed {
		return appErrors.NewValidation(fmt.Sprintf("status must be SENT or FAILED, got %q", status))
	}

	campaignID, err := s.LogRepo.UpdateStatus(logID, status)
	if err != nil {
		return err
	}

	metrics.ReceiptsTotal.WithLabelValues(string(status)).Inc()

	// counter drift is logged, not surfaced: the log row is the source of truth
	if err := s.CampaignRepo.IncrementOutcome(campaignID, status); err != nil {
		log.Println("⚠️ failed to bump", status, "counter for campaign", campaignID, ":", err)
	}
	return nil
}
