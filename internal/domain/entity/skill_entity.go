package entity

import "time"

const (
	ProficiencyBeginner     = "Beginner"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyAdvanced     = "Advanced"
	ProficiencyExpert       = "Expert"
)

type Skill struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Proficiency string    `json:"proficiency"`
	Category    string    `json:"category"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Skill) OwnerID() string      { return s.UserID }
func (s *Skill) SetOwnerID(id string) { s.UserID = id }
