package models

import "time"

type Team struct {
	ID            int       `json:"team_id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description" db:"description"`
	ProfileImage  *string   `json:"team_profile_image" db:"team_profile_image"`
	BannerImage   *string   `json:"team_banner_image" db:"team_banner_image"`
	CaptainID     *int      `json:"captain_id" db:"captain_id"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	RankingPoints int       `json:"ranking_points" db:"ranking_points"`
	MembersCount  int       `json:"members_count" db:"members_count"`
	Notes         *string   `json:"notes" db:"notes"`
	CreateDate    time.Time `json:"create_date" db:"create_date"`
	UpdateDate    time.Time `json:"update_date" db:"update_date"`

	Players []TeamMember `json:"players,omitempty" db:"-"`
}

// TeamMember is a user seen through their membership in a team.
type TeamMember struct {
	UserID   int       `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinDate time.Time `json:"join_date"`
}
