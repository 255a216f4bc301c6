package entity

import "time"

// Valid roles for User. Role decides the data scope handlers load:
// admin sees everything, supervisor sees their TAP area, salesforce
// sees only records carrying their own name.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleSalesforce = "salesforce"
)

// User is a dashboard account.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plain in the domain after persisting
	Name         string
	Role         string // admin, supervisor, salesforce
	Salesforce   string // scope value for RoleSalesforce
	Tap          string // scope value for RoleSupervisor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
