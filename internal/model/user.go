// internal/model/user.go
package model

type User struct {
	ID      int    `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Picture string `db:"picture" json:"picture"`
}
