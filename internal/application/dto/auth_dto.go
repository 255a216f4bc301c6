package dto

// RegisterRequest creates an account. Salesforce/Tap are the scope values
// for the salesforce and supervisor roles respectively.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name"`
	Role       string `json:"role" validate:"omitempty,oneof=admin supervisor salesforce"`
	Salesforce string `json:"salesforce"`
	Tap        string `json:"tap"`
}

// LoginRequest credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse public view of a user.
type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Salesforce string `json:"salesforce,omitempty"`
	Tap        string `json:"tap,omitempty"`
}

// LoginResponse issued token plus the user it belongs to.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
