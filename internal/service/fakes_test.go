package service_test

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	appErrors "github.com/minicrm/campaign-backend/internal/errors"
	"github.com/minicrm/campaign-backend/internal/model"
	"github.com/minicrm/campaign-backend/internal/query"
)

// In-memory fakes for the repository interfaces. Mutex-guarded because
// the delivery-loop test drives them from timer goroutines.

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers []model.Customer
	nextID    int
	conflict  bool // force a ConflictError on Create past the Exists pre-check
}

func (f *fakeCustomerRepo) Exists(email, owner string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if strings.EqualFold(c.Email, email) && strings.EqualFold(c.AddedBy, owner) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCustomerRepo) Create(c *model.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.Name == "" || c.Email == "" {
		return appErrors.NewValidation("name and email are required")
	}
	if f.conflict {
		return appErrors.NewConflict(c.Email, c.AddedBy)
	}
	for _, existing := range f.customers {
		if strings.EqualFold(existing.Email, c.Email) && strings.EqualFold(existing.AddedBy, c.AddedBy) {
			return appErrors.NewConflict(c.Email, c.AddedBy)
		}
	}
	f.nextID++
	c.ID = f.nextID
	f.customers = append(f.customers, *c)
	return nil
}

func (f *fakeCustomerRepo) CountMatching(owner string, fl query.Filter) (int, error) {
	matches, err := f.FindMatching(owner, fl)
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

func (f *fakeCustomerRepo) FindMatching(owner string, fl query.Filter) ([]model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matches := []model.Customer{}
	for _, c := range f.customers {
		if strings.EqualFold(c.AddedBy, owner) && fl.Matches(c) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

type fakeCampaignRepo struct {
	mu        sync.Mutex
	campaigns []*model.Campaign
	nextID    int
	createErr error
}

func (f *fakeCampaignRepo) Create(c *model.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	c.ID = f.nextID
	f.campaigns = append(f.campaigns, c)
	return nil
}

func (f *fakeCampaignRepo) ListByCreator(email string) ([]model.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Campaign{}
	for i := len(f.campaigns) - 1; i >= 0; i-- {
		if strings.EqualFold(f.campaigns[i].CreatedBy, email) {
			out = append(out, *f.campaigns[i])
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) IncrementOutcome(campaignID int, status model.LogStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.campaigns {
		if c.ID == campaignID {
			if status == model.LogStatusSent {
				c.Sent++
			} else {
				c.Failed++
			}
			return nil
		}
	}
	return nil
}

func (f *fakeCampaignRepo) get(id int) *model.Campaign {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.campaigns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

type fakeLogRepo struct {
	mu      sync.Mutex
	logs    map[string]*model.CommunicationLog
	order   []string
	failFor int // customer ID whose log creation should fail
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{logs: map[string]*model.CommunicationLog{}}
}

func (f *fakeLogRepo) Create(l *model.CommunicationLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor != 0 && l.CustomerID == f.failFor {
		return appErrors.NewValidation("forced log failure")
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = model.LogStatusPending
	}
	stored := *l
	f.logs[l.ID] = &stored
	f.order = append(f.order, l.ID)
	return nil
}

func (f *fakeLogRepo) UpdateStatus(id string, status model.LogStatus) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.logs[id]
	if !ok {
		return 0, appErrors.NewNotFound("communication log", id)
	}
	l.Status = status
	return l.CampaignID, nil
}

func (f *fakeLogRepo) ListByCampaign(campaignID int) ([]model.CommunicationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.CommunicationLog{}
	for i := len(f.order) - 1; i >= 0; i-- {
		l := f.logs[f.order[i]]
		if l.CampaignID == campaignID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLogRepo) statuses() map[model.LogStatus]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[model.LogStatus]int{}
	for _, l := range f.logs {
		counts[l.Status]++
	}
	return counts
}

// fakeQueue records published dispatches without running any handlers.
type fakeQueue struct {
	mu        sync.Mutex
	published []any
}

func (f *fakeQueue) Publish(topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, payload)
	return nil
}

func (f *fakeQueue) Subscribe(topic string, handler func(payload any) error) error {
	return nil
}

func (f *fakeQueue) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}
