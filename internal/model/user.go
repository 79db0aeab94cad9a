package model

// User represents a row in the users table. Rows are created once at
// registration and never updated or deleted.
type User struct {
	UserID       string
	PasswordHash string
	Nickname     string
	Email        string
	Purpose      string
}

// RegisterRequest represents a user registration request. Every field is
// required.
type RegisterRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Purpose  string `json:"purpose"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// Session is the minimal payload returned on successful login. It is not a
// signed token: the caller holds it in memory for the duration of the browser
// session and it never contains the password hash.
type Session struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Purpose  string `json:"purpose"`
}

// RegisterResponse is the registration result object displayed by the front
// end as-is.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// LoginResponse is the login result object.
type LoginResponse struct {
	Success bool     `json:"success"`
	User    *Session `json:"user,omitempty"`
	Error   string   `json:"error,omitempty"`
}
