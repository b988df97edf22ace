package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hugh/orgroster/internal/apperr"
	"github.com/hugh/orgroster/internal/database"
	"github.com/hugh/orgroster/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound     = apperr.NotFound("Team not found")
	ErrTeamNameExists   = apperr.Conflict("Team with this name already exists")
	ErrTeamNameRequired = apperr.Validation("Validation failed", map[string]string{"name": "Name is required"})
)

type TeamFields struct {
	Name        string
	Description *string
}

// TeamPatch is a partial team update. Nil or empty values keep the stored value.
type TeamPatch struct {
	Name        *string
	Description *string
}

type TeamStore struct {
	scoped[models.Team]
}

func NewTeamStore(db *gorm.DB, logger *slog.Logger) *TeamStore {
	return &TeamStore{scoped[models.Team]{
		db:       db,
		logger:   logger,
		entity:   "team",
		notFound: ErrTeamNotFound,
	}}
}

func (s *TeamStore) Create(ctx context.Context, orgID uint, fields TeamFields) (*models.Team, error) {
	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	taken, err := s.exists(ctx, orgID, 0, "name = ?", name)
	if err != nil {
		return nil, s.internal(ctx, "create", err, orgID, 0)
	}
	if taken {
		return nil, ErrTeamNameExists
	}

	team := models.Team{
		OrganisationID: orgID,
		Name:           name,
		Description:    nonEmpty(fields.Description),
	}
	if err := s.db.WithContext(ctx).Create(&team).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrTeamNameExists
		}
		if database.IsCheckViolation(err) {
			return nil, ErrTeamNameRequired
		}
		return nil, s.internal(ctx, "create", err, orgID, 0)
	}

	s.logger.InfoContext(ctx, "created team", "organisation_id", orgID, "id", team.ID)
	return &team, nil
}

func (s *TeamStore) List(ctx context.Context, orgID uint) ([]models.Team, error) {
	return s.list(ctx, orgID)
}

func (s *TeamStore) Get(ctx context.Context, orgID, id uint) (*models.Team, error) {
	return s.get(ctx, orgID, id)
}

// Update merges the patch into the stored team. Unlike employees, omitted
// fields keep their previous values.
func (s *TeamStore) Update(ctx context.Context, orgID, id uint, patch TeamPatch) (*models.Team, error) {
	team, err := s.get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" && name != team.Name {
			taken, err := s.exists(ctx, orgID, id, "name = ?", name)
			if err != nil {
				return nil, s.internal(ctx, "update", err, orgID, id)
			}
			if taken {
				return nil, ErrTeamNameExists
			}
			team.Name = name
		}
	}
	if d := nonEmpty(patch.Description); d != nil {
		team.Description = d
	}

	if err := s.db.WithContext(ctx).
		Model(team).
		Where("organisation_id = ?", orgID).
		Select("Name", "Description").
		Updates(team).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrTeamNameExists
		}
		return nil, s.internal(ctx, "update", err, orgID, id)
	}

	return team, nil
}

func (s *TeamStore) Delete(ctx context.Context, orgID, id uint) error {
	return s.delete(ctx, orgID, id)
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
