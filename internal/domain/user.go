package domain

import "time"

// User representa a entidade do usuário no sistema.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRegistration representa os dados de criação de um usuário (usado pelo seed).
type UserRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsActive bool   `json:"isActive"`
}

// UserProfile é a visão pública do usuário devolvida no login.
type UserProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
}

// LoginResult é a resposta de um login bem-sucedido.
type LoginResult struct {
	User      UserProfile `json:"usuario"`
	Token     string      `json:"token"`
	ExpiresIn string      `json:"expiresIn"`
}

// Profile devolve a visão pública do usuário.
func (u User) Profile() UserProfile {
	return UserProfile{ID: u.ID, Name: u.Name, Email: u.Email, IsActive: u.IsActive}
}
