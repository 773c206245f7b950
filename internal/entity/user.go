package entity

import "time"

type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Password      string    `json:"-"`
	AvatarURL     string    `json:"avatar_url"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	RefreshToken  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Sanitize strips the credential fields before the user leaves the backend.
// The json tags already hide them, sanitizing as well keeps copies handed to
// templates, logs or queue events clean.
func (u *User) Sanitize() {
	u.Password = ""
	u.RefreshToken = ""
}
