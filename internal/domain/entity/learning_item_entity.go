package entity

import "time"

const (
	LearningInProgress = "In Progress"
	LearningCompleted  = "Completed"
)

type LearningItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	DateStarted time.Time `json:"date_started"`
	Link        string    `json:"link"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (l *LearningItem) OwnerID() string      { return l.UserID }
func (l *LearningItem) SetOwnerID(id string) { l.UserID = id }
