package entity

import "time"

// Profile is the public face of a user, one per user.
type Profile struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id,omitempty"`
	User            *UserSummary `json:"user,omitempty"`
	FullName        string       `json:"full_name"`
	Title           string       `json:"title"`
	Summary         string       `json:"summary"`
	Bio             string       `json:"bio"`
	Location        string       `json:"location"`
	Phone           string       `json:"phone"`
	Email           string       `json:"email"`
	Website         string       `json:"website"`
	LinkedinURL     string       `json:"linkedin_url"`
	GithubURL       string       `json:"github_url"`
	ProfileImageURL string       `json:"profile_image_url"`
	ResumeURL       string       `json:"resume_url"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// UserSummary is the restricted user shape embedded in expanded records.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (p *Profile) OwnerID() string      { return p.UserID }
func (p *Profile) SetOwnerID(id string) { p.UserID = id }
