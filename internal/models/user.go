package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "superadmin"
)

// AuthAccount is a login credential row in auth_login.
type AuthAccount struct {
	ID           string    `db:"id" json:"id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// JWTClaims carries the authenticated caller identity on requests.
type JWTClaims struct {
	StudentID string   `json:"student_id"`
	Name      string   `json:"name"`
	Role      UserRole `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest accepts a student id or an email as the account handle.
type LoginRequest struct {
	Account  string `json:"account" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse returns the issued bearer token and account info.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	IssuedAt  time.Time `json:"issued_at"`
	StudentID string    `json:"student_id"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
}

// RegisterRequest creates a credential for a student.
type RegisterRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
