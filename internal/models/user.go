package models

// User is the relational account row. Sub is the stable subject identifier
// that document-store entries reference as user_id.
type User struct {
	Sub      uint   `json:"sub" gorm:"primaryKey;column:sub"`
	Username string `json:"username" gorm:"uniqueIndex"`
	Password string `json:"-"` // bcrypt hash, never serialized
}

// Actor is the authenticated user a request acts as. It is resolved once by
// the session middleware and threaded explicitly through every mutation.
type Actor struct {
	ID       uint   `json:"user_id"`
	UserName string `json:"userName"`
}

// SignupRequest defines the request body for creating an account
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for logging in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
