package entity

import "time"

// Experience is a position held. ToDate is nil while Current is true.
type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	FromDate    time.Time  `json:"from_date"`
	ToDate      *time.Time `json:"to_date"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (e *Experience) OwnerID() string      { return e.UserID }
func (e *Experience) SetOwnerID(id string) { e.UserID = id }
