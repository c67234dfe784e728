package model

import "github.com/google/uuid"

const (
	RoleAdmin  = "admin"
	RoleDriver = "driver"
)

// Principal is the authenticated caller resolved from the access token.
type Principal struct {
	UserID   uuid.UUID
	Role     string
	DriverID *uuid.UUID
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsDriver() bool {
	return p.Role == RoleDriver
}
