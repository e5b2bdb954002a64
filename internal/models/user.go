package models

// User is the authenticated principal returned by the auth endpoints.
// It is never mutated after login; the session holds it only for
// ownership comparison against feedback and comment authors.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// LoginRequest defines the request body for POST /usuarios/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// RegisterRequest defines the request body for POST /usuarios/cadastro
type RegisterRequest struct {
	Name     string `json:"nome" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=6"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message,omitempty"`
}
