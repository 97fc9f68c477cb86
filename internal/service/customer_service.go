// internal/service/customer_service.go
package service

import (
	"encoding/csv"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/minicrm/campaign-backend/internal/errors"
	"github.com/minicrm/campaign-backend/internal/metrics"
	"github.com/minicrm/campaign-backend/internal/model"
	"github.com/minicrm/campaign-backend/internal/repository"
)

type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
	Validate     *validator.Validate
}

func NewCustomerService(repo repository.CustomerRepositoryInterface) *CustomerService {
	return &CustomerService{
		CustomerRepo: repo,
		Validate:     validator.New(),
	}
}

// ItemError pairs a rejected record with the reason, returned alongside
// the successes so one bad record never aborts a batch.
type ItemError struct {
	Customer model.Customer `json:"customer"`
	Error    string         `json:"error"`
}

type BulkResult struct {
	Added   int
	Skipped int
	Errors  []ItemError
}

// BulkCreate processes records one at a time: invalid records are
// collected, existing (email, owner) pairs are skipped, and a conflict
// from the store's unique index (the race-window backstop) counts as a
// skip too.
func (s *CustomerService) BulkCreate(customers []model.Customer, fallbackOwner string) (*BulkResult, error) {
	result := &BulkResult{Errors: []ItemError{}}

	for _, c := range customers {
		if c.AddedBy == "" {
			c.AddedBy = fallbackOwner
		}

		if err := s.Validate.Struct(&c); err != nil {
			msg := "Name and email are required"
			if c.Name != "" && c.Email != "" {
				msg = err.Error()
			}
			result.Errors = append(result.Errors, ItemError{Customer: c, Error: msg})
			metrics.CustomersIngestedTotal.WithLabelValues("invalid").Inc()
			continue
		}

		exists, err := s.CustomerRepo.Exists(c.Email, c.AddedBy)
		if err != nil {
			result.Errors = append(result.Errors, ItemError{Customer: c, Error: err.Error()})
			continue
		}
		if exists {
			result.Skipped++
			metrics.CustomersIngestedTotal.WithLabelValues("skipped").Inc()
			continue
		}

		if err := s.CustomerRepo.Create(&c); err != nil {
			if appErrors.IsConflict(err) {
				// lost the race past the pre-check, benign
				result.Skipped++
				metrics.CustomersIngestedTotal.WithLabelValues("skipped").Inc()
				continue
			}
			result.Errors = append(result.Errors, ItemError{Customer: c, Error: err.Error()})
			continue
		}
		result.Added++
		metrics.CustomersIngestedTotal.WithLabelValues("added").Inc()
	}

	return result, nil
}

type ImportResult struct {
	Added   int
	Skipped int
}

// ImportCSV streams rows sequentially, one store round-trip per row.
// Rows missing name or email count as skipped, same as duplicates.
func (s *CustomerService) ImportCSV(r io.Reader, addedBy string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, appErrors.NewValidation("empty or unreadable CSV file")
	}
	cols := headerIndex(header)

	result := &ImportResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Println("⚠️ skipping malformed CSV row:", err)
			result.Skipped++
			continue
		}

		c := rowToCustomer(row, cols)
		c.AddedBy = addedBy

		if c.Name == "" || c.Email == "" {
			result.Skipped++
			metrics.CustomersIngestedTotal.WithLabelValues("invalid").Inc()
			continue
		}

		exists, err := s.CustomerRepo.Exists(c.Email, addedBy)
		if err != nil {
			log.Println("⚠️ existence check failed for", c.Email, ":", err)
			result.Skipped++
			continue
		}
		if exists {
			result.Skipped++
			metrics.CustomersIngestedTotal.WithLabelValues("skipped").Inc()
			continue
		}

		if err := s.CustomerRepo.Create(&c); err != nil {
			if !appErrors.IsConflict(err) {
				log.Println("⚠️ failed to import", c.Email, ":", err)
			}
			result.Skipped++
			metrics.CustomersIngestedTotal.WithLabelValues("skipped").Inc()
			continue
		}
		result.Added++
		metrics.CustomersIngestedTotal.WithLabelValues("added").Inc()
	}

	return result, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func rowToCustomer(row []string, cols map[string]int) model.Customer {
	get := func(names ...string) string {
		for _, name := range names {
			if i, ok := cols[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	c := model.Customer{
		Name:    get("name"),
		Email:   get("email"),
		Phone:   get("phone"),
		Address: get("address"),
	}
	if spend := get("spend", "total_spent"); spend != "" {
		c.Spend, _ = strconv.ParseFloat(spend, 64)
	}
	if visits := get("visits"); visits != "" {
		c.Visits, _ = strconv.Atoi(visits)
	}
	if raw := get("last_active", "lastactive"); raw != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				c.LastActive = &t
				break
			}
		}
	}
	return c
}
