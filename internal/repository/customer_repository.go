// internal/repository/customer_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	appErrors "github.com/minicrm/campaign-backend/internal/errors"
	"github.com/minicrm/campaign-backend/internal/model"
	"github.com/minicrm/campaign-backend/internal/query"
)

// CustomerRepositoryInterface defines the store contract used by services
type CustomerRepositoryInterface interface {
	Exists(email, owner string) (bool, error)
	Create(c *model.Customer) error
	CountMatching(owner string, f query.Filter) (int, error)
	FindMatching(owner string, f query.Filter) ([]model.Customer, error)
}

// CustomerRepository is the Postgres implementation
type CustomerRepository struct {
	DB *sql.DB
}

// Exists does a normalized (email, owner) lookup, used to deduplicate
// bulk creation and CSV import before hitting the unique index.
func (r *CustomerRepository) Exists(email, owner string) (bool, error) {
	var count int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM customers WHERE lower(email) = lower($1) AND lower(added_by) = lower($2)`,
		email, owner,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists a new customer. The unique (email, added_by) index is
// the authoritative guard, a 23505 surfaces as ConflictError so callers
// can treat the race window as a benign skip.
func (r *CustomerRepository) Create(c *model.Customer) error {
	if c.Name == "" || c.Email == "" {
		return appErrors.NewValidation("name and email are required")
	}

	c.CreatedAt = time.Now()
	queryStr := `
        INSERT INTO customers (name, email, phone, address, spend, visits, last_active, added_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	err := r.DB.QueryRow(
		queryStr,
		c.Name, c.Email, c.Phone, c.Address, c.Spend, c.Visits, c.LastActive, c.AddedBy, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return appErrors.NewConflict(c.Email, c.AddedBy)
		}
		return err
	}
	return nil
}

// CountMatching counts the audience for a rule filter. The owner scope is
// a mandatory top-level AND term, a rule filter alone can never widen the
// result past the owner's customers.
func (r *CustomerRepository) CountMatching(owner string, f query.Filter) (int, error) {
	clause, args := f.SQL(2)
	queryStr := fmt.Sprintf(
		`SELECT COUNT(*) FROM customers WHERE lower(added_by) = lower($1) AND %s`, clause,
	)

	var count int
	err := r.DB.QueryRow(queryStr, append([]any{owner}, args...)...).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindMatching returns the full audience records for a campaign send.
// Same owner scoping as CountMatching.
func (r *CustomerRepository) FindMatching(owner string, f query.Filter) ([]model.Customer, error) {
	clause, args := f.SQL(2)
	queryStr := fmt.Sprintf(`
        SELECT id, name, email, phone, address, spend, visits, last_active, added_by, created_at
        FROM customers
        WHERE lower(added_by) = lower($1) AND %s
        ORDER BY id
    `, clause)

	rows, err := r.DB.Query(queryStr, append([]any{owner}, args...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
			&c.Spend, &c.Visits, &c.LastActive, &c.AddedBy, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
