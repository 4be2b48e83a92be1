package models

type User struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Birth        *string `json:"birth,omitempty"`
	PasswordHash string  `json:"-"`
}

// UserSummary is the shape returned by the user list endpoint.
type UserSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Credentials struct {
	User     string `json:"user"`
	Password string `json:"password"`
}
