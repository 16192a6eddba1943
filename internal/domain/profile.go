package domain

import "time"

type Profile struct {
	UserID    int64     `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Age       int       `json:"age" db:"age"`
	Gender    string    `json:"gender" db:"gender"`
	Bio       *string   `json:"bio" db:"bio"`
	Media     []string  `json:"media" db:"media"`
	Interests []string  `json:"interests" db:"interests"`
	Banned    bool      `json:"banned" db:"banned"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Visible reports whether the profile may be shown in discovery.
func (p *Profile) Visible() bool {
	return p.Completed && !p.Banned
}
