package models

import "github.com/dimitrije/portal-api/internal/document"

// Portal user roles
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Auth0ID   string `json:"auth0_id"`
	Role      string `json:"role,omitempty"`
	Company   string `json:"company,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func UserFromRecord(r document.Record) *User {
	id, _ := r.ID()
	return &User{
		ID:        id,
		Email:     r.String("email"),
		Name:      r.String("name"),
		Auth0ID:   r.String("auth0_id"),
		Role:      r.String("role"),
		Company:   r.String("company"),
		CreatedAt: r.String(document.FieldCreatedAt),
		UpdatedAt: r.String(document.FieldUpdatedAt),
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
