package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/soccer-mvp/soccer-api/models"
)

var (
	ErrTeamPlayerConflict    = errors.New("user is already a member of this team")
	ErrTeamPlayerUserInvalid = errors.New("team player user reference invalid")
	ErrTeamPlayerTeamInvalid = errors.New("team player team reference invalid")
)

type TeamPlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tp *models.TeamPlayer) error
	ListMembersByTeamID(ctx context.Context, teamID int) ([]models.TeamMember, error)
	DeleteByTeamID(ctx context.Context, exec SQLExecutor, teamID int) error
}

type postgresTeamPlayerRepository struct {
	db *sql.DB
}

func NewPostgresTeamPlayerRepository(db *sql.DB) TeamPlayerRepository {
	return &postgresTeamPlayerRepository{db: db}
}

func (r *postgresTeamPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamPlayerRepository) Create(ctx context.Context, exec SQLExecutor, tp *models.TeamPlayer) error {
	query := `
		INSERT INTO team_players (user_id, team_id)
		VALUES ($1, $2)
		RETURNING id, create_date, update_date`

	err := r.getExecutor(exec).QueryRowContext(ctx, query, tp.UserID, tp.TeamID).
		Scan(&tp.ID, &tp.CreateDate, &tp.UpdateDate)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "unique_user_team" {
					return ErrTeamPlayerConflict
				}
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "team_players_user_id_fkey":
					return ErrTeamPlayerUserInvalid
				case "team_players_team_id_fkey":
					return ErrTeamPlayerTeamInvalid
				}
			}
		}
		return err
	}
	return nil
}

// ListMembersByTeamID returns the team's current players joined with their
// user records, ordered by join date.
func (r *postgresTeamPlayerRepository) ListMembersByTeamID(ctx context.Context, teamID int) ([]models.TeamMember, error) {
	query := `
		SELECT u.id, u.name, u.email, tp.create_date
		FROM team_players tp
		JOIN users u ON u.id = tp.user_id
		WHERE tp.team_id = $1
		ORDER BY tp.create_date ASC, tp.id ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]models.TeamMember, 0)
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.JoinDate); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// DeleteByTeamID removes every membership row of a team. Zero affected rows
// is not an error: a team may have no members.
func (r *postgresTeamPlayerRepository) DeleteByTeamID(ctx context.Context, exec SQLExecutor, teamID int) error {
	query := `DELETE FROM team_players WHERE team_id = $1`
	_, err := r.getExecutor(exec).ExecContext(ctx, query, teamID)
	return err
}
