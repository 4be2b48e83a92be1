package models

import "time"

// TeamPlayer is a membership row linking a user to a team.
// A given (user_id, team_id) pair is unique.
type TeamPlayer struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	TeamID     int       `json:"team_id" db:"team_id"`
	CreateDate time.Time `json:"create_date" db:"create_date"`
	UpdateDate time.Time `json:"update_date" db:"update_date"`
}
