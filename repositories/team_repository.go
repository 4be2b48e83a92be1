package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/soccer-mvp/soccer-api/models"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamNameConflict   = errors.New("team name conflict")
	ErrTeamCaptainInvalid = errors.New("team captain reference invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	IncrementMembersCount(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const teamColumns = `id, name, description, team_profile_image, team_banner_image,
		captain_id, is_active, ranking_points, members_count, notes, create_date, update_date`

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, description, team_profile_image, team_banner_image, captain_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, ranking_points, members_count, create_date, update_date`

	err := r.db.QueryRowContext(ctx, query,
		team.Name,
		team.Description,
		team.ProfileImage,
		team.BannerImage,
		team.CaptainID,
		team.Notes,
	).Scan(
		&team.ID,
		&team.IsActive,
		&team.RankingPoints,
		&team.MembersCount,
		&team.CreateDate,
		&team.UpdateDate,
	)
	if err != nil {
		return mapTeamConstraintError(err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	team := &models.Team{}
	err := r.getExecutor(exec).QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.ProfileImage,
		&team.BannerImage,
		&team.CaptainID,
		&team.IsActive,
		&team.RankingPoints,
		&team.MembersCount,
		&team.Notes,
		&team.CreateDate,
		&team.UpdateDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Description,
			&team.ProfileImage,
			&team.BannerImage,
			&team.CaptainID,
			&team.IsActive,
			&team.RankingPoints,
			&team.MembersCount,
			&team.Notes,
			&team.CreateDate,
			&team.UpdateDate,
		)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// Update writes every mutable column and refreshes update_date. The caller
// decides which fields changed; unchanged fields are written back as-is.
func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams SET
			name = $1,
			description = $2,
			team_profile_image = $3,
			team_banner_image = $4,
			captain_id = $5,
			is_active = $6,
			ranking_points = $7,
			notes = $8,
			update_date = NOW()
		WHERE id = $9
		RETURNING update_date`

	err := r.db.QueryRowContext(ctx, query,
		team.Name,
		team.Description,
		team.ProfileImage,
		team.BannerImage,
		team.CaptainID,
		team.IsActive,
		team.RankingPoints,
		team.Notes,
		team.ID,
	).Scan(&team.UpdateDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTeamNotFound
		}
		return mapTeamConstraintError(err)
	}
	return nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	query := `DELETE FROM teams WHERE id = $1`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) IncrementMembersCount(ctx context.Context, exec SQLExecutor, id int) error {
	query := `
		UPDATE teams SET
			members_count = members_count + 1,
			update_date = NOW()
		WHERE id = $1`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func mapTeamConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "teams_name_key" {
				return ErrTeamNameConflict
			}
		case "23503": // foreign_key_violation
			if pqErr.Constraint == "teams_captain_id_fkey" {
				return ErrTeamCaptainInvalid
			}
		}
	}
	return err
}
