// internal/repository/user_repository.go
package repository

import (
	"database/sql"

	"github.com/minicrm/campaign-backend/internal/model"
)

type UserRepositoryInterface interface {
	FindByEmail(email string) (*model.User, error)
	Create(u *model.User) error
}

type UserRepository struct {
	DB *sql.DB
}

// FindByEmail returns nil, nil when the user does not exist yet.
func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	query := `SELECT id, name, email, picture FROM users WHERE lower(email) = lower($1)`

	var u model.User
	err := r.DB.QueryRow(query, email).Scan(&u.ID, &u.Name, &u.Email, &u.Picture)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *model.User) error {
	query := `INSERT INTO users (name, email, picture) VALUES ($1, $2, $3) RETURNING id`
	return r.DB.QueryRow(query, u.Name, u.Email, u.Picture).Scan(&u.ID)
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
