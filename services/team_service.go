package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/soccer-mvp/soccer-api/models"
	"github.com/soccer-mvp/soccer-api/repositories"
	"github.com/soccer-mvp/soccer-api/storage"
	"golang.org/x/sync/errgroup"
)

// Team event types broadcast to websocket subscribers.
const (
	EventTeamCreated = "team_created"
	EventTeamUpdated = "team_updated"
	EventTeamDeleted = "team_deleted"
	EventPlayerAdded = "player_added"
)

// EventPublisher pushes team mutations to connected websocket clients.
// A nil publisher disables broadcasting.
type EventPublisher interface {
	PublishTeamEvent(eventType string, payload interface{})
}

type TeamImageKind string

const (
	TeamImageProfile TeamImageKind = "profile"
	TeamImageBanner  TeamImageKind = "banner"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	AddPlayer(ctx context.Context, teamID, userID int) (*models.TeamPlayer, error)
	UploadTeamImage(ctx context.Context, teamID int, kind TeamImageKind, file io.Reader, contentType string) (*models.Team, error)
}

type CreateTeamInput struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	ProfileImage *string `json:"team_profile_image"`
	BannerImage  *string `json:"team_banner_image"`
	CaptainID    *int    `json:"captain_id"`
	Notes        *string `json:"notes"`
}

// UpdateTeamInput carries a partial update: nil fields are left untouched.
type UpdateTeamInput struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	ProfileImage *string `json:"team_profile_image"`
	BannerImage  *string `json:"team_banner_image"`
	CaptainID    *int    `json:"captain_id"`
	Notes        *string `json:"notes"`
}

type teamService struct {
	db         *sql.DB
	teamRepo   repositories.TeamRepository
	playerRepo repositories.TeamPlayerRepository
	uploader   storage.FileUploader
	publisher  EventPublisher
}

func NewTeamService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.TeamPlayerRepository,
	uploader storage.FileUploader,
	publisher EventPublisher,
) TeamService {
	return &teamService{
		db:         db,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
		publisher:  publisher,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name, err := validateTeamName(input.Name)
	if err != nil {
		return nil, err
	}
	description, err := validateOptionalText(input.Description, ErrDescriptionTooLong)
	if err != nil {
		return nil, err
	}
	notes, err := validateOptionalText(input.Notes, ErrNotesTooLong)
	if err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:         name,
		Description:  description,
		ProfileImage: input.ProfileImage,
		BannerImage:  input.BannerImage,
		CaptainID:    input.CaptainID,
		Notes:        notes,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamCaptainInvalid):
			return nil, ErrCaptainInvalid
		default:
			return nil, fmt.Errorf("failed to create team: %w", err)
		}
	}

	s.publish(EventTeamCreated, team)
	return team, nil
}

// GetTeamByID loads the team row and its current player list concurrently.
func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	var (
		team    *models.Team
		members []models.TeamMember
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.teamRepo.GetByID(gCtx, nil, id)
		if err != nil {
			return err
		}
		team = t
		return nil
	})
	g.Go(func() error {
		m, err := s.playerRepo.ListMembersByTeamID(gCtx, id)
		if err != nil {
			return err
		}
		members = m
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}

	team.Players = members
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	if input.Name == nil && input.Description == nil && input.ProfileImage == nil &&
		input.BannerImage == nil && input.CaptainID == nil && input.Notes == nil {
		return nil, ErrNoFieldsToUpdate
	}

	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d for update: %w", id, err)
	}

	if input.Name != nil {
		name, err := validateTeamName(*input.Name)
		if err != nil {
			return nil, err
		}
		team.Name = name
	}
	if input.Description != nil {
		description, err := validateOptionalText(input.Description, ErrDescriptionTooLong)
		if err != nil {
			return nil, err
		}
		team.Description = description
	}
	if input.ProfileImage != nil {
		team.ProfileImage = input.ProfileImage
	}
	if input.BannerImage != nil {
		team.BannerImage = input.BannerImage
	}
	if input.CaptainID != nil {
		team.CaptainID = input.CaptainID
	}
	if input.Notes != nil {
		notes, err := validateOptionalText(input.Notes, ErrNotesTooLong)
		if err != nil {
			return nil, err
		}
		team.Notes = notes
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamCaptainInvalid):
			return nil, ErrCaptainInvalid
		default:
			return nil, fmt.Errorf("failed to update team %d: %w", id, err)
		}
	}

	s.publish(EventTeamUpdated, team)
	return team, nil
}

// DeleteTeam removes the team and all of its membership rows as one
// transaction. Nothing is deleted if any step fails.
func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := s.playerRepo.DeleteByTeamID(ctx, tx, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete memberships of team %d: %w", id, err)
	}

	if err := s.teamRepo.Delete(ctx, tx, id); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.publish(EventTeamDeleted, map[string]int{"team_id": id})
	return nil
}

// AddPlayer creates the membership row, increments the team's member
// counter and refreshes its update timestamp, all in one transaction.
func (s *teamService) AddPlayer(ctx context.Context, teamID, userID int) (*models.TeamPlayer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if _, err := s.teamRepo.GetByID(ctx, tx, teamID); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}

	tp := &models.TeamPlayer{UserID: userID, TeamID: teamID}
	if err := s.playerRepo.Create(ctx, tx, tp); err != nil {
		_ = tx.Rollback()
		switch {
		case errors.Is(err, repositories.ErrTeamPlayerConflict):
			return nil, ErrTeamPlayerConflict
		case errors.Is(err, repositories.ErrTeamPlayerUserInvalid):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("failed to add player %d to team %d: %w", userID, teamID, err)
		}
	}

	if err := s.teamRepo.IncrementMembersCount(ctx, tx, teamID); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to increment members count of team %d: %w", teamID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.publish(EventPlayerAdded, tp)
	return tp, nil
}

// UploadTeamImage stores the file in object storage and persists its public
// URL on the team record.
func (s *teamService) UploadTeamImage(ctx context.Context, teamID int, kind TeamImageKind, file io.Reader, contentType string) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrImageStorageUnavailable
	}
	if kind != TeamImageProfile && kind != TeamImageBanner {
		return nil, ErrImageKindInvalid
	}

	team, err := s.teamRepo.GetByID(ctx, nil, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}

	key := fmt.Sprintf("teams/%d/%s-%d", teamID, kind, time.Now().UnixNano())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s image for team %d: %w", kind, teamID, err)
	}

	location := result.Location
	var replaced *string
	if kind == TeamImageProfile {
		replaced = team.ProfileImage
		team.ProfileImage = &location
	} else {
		replaced = team.BannerImage
		team.BannerImage = &location
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to store %s image URL for team %d: %w", kind, teamID, err)
	}

	// Best effort: the replaced object should not linger in the bucket,
	// but a failed cleanup must not fail the upload.
	if replaced != nil {
		if oldKey := objectKeyFromURL(*replaced); oldKey != "" {
			_ = s.uploader.Delete(ctx, oldKey)
		}
	}

	s.publish(EventTeamUpdated, team)
	return team, nil
}

// objectKeyFromURL recovers the storage key from a stored public URL. Public
// URLs are formed as base + "/" + key, so the key is the URL path.
func objectKeyFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

func (s *teamService) publish(eventType string, payload interface{}) {
	if s.publisher != nil {
		s.publisher.PublishTeamEvent(eventType, payload)
	}
}

// Length limits are in characters, not bytes, so accented names count the
// same as plain ASCII ones.
func validateTeamName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrTeamNameRequired
	}
	if n := utf8.RuneCountInString(name); n < 2 || n > 255 {
		return "", ErrTeamNameLength
	}
	return name, nil
}

func validateOptionalText(value *string, tooLong error) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > 350 {
		return nil, tooLong
	}
	return &trimmed, nil
}
