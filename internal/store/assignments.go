package store

import (
	"context"
	"log/slog"

	"github.com/hugh/orgroster/internal/apperr"
	"github.com/hugh/orgroster/internal/database"
	"github.com/hugh/orgroster/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyAssigned    = apperr.Conflict("Employee already assigned to team")
	ErrAssignmentNotFound = apperr.NotFound("Assignment not found")
)

// AssignmentStore manages employee membership of teams within one organisation.
type AssignmentStore struct {
	db        *gorm.DB
	employees *EmployeeStore
	teams     *TeamStore
	logger    *slog.Logger
}

func NewAssignmentStore(db *gorm.DB, employees *EmployeeStore, teams *TeamStore, logger *slog.Logger) *AssignmentStore {
	return &AssignmentStore{db: db, employees: employees, teams: teams, logger: logger}
}

// Assign adds the employee to the team. The team is looked up first, then
// the employee, so a request naming two missing rows reports the team.
func (s *AssignmentStore) Assign(ctx context.Context, orgID, employeeID, teamID uint) (*models.EmployeeTeam, error) {
	if _, err := s.teams.Get(ctx, orgID, teamID); err != nil {
		return nil, err
	}
	if _, err := s.employees.Get(ctx, orgID, employeeID); err != nil {
		return nil, err
	}

	// Both rows belong to orgID, so the pair alone identifies a duplicate.
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.EmployeeTeam{}).
		Where("employee_id = ? AND team_id = ?", employeeID, teamID).
		Count(&count).Error; err != nil {
		return nil, logInternal(ctx, s.logger, "assignment.assign", err, orgID, teamID)
	}
	if count > 0 {
		return nil, ErrAlreadyAssigned
	}

	a := models.EmployeeTeam{
		EmployeeID:     employeeID,
		TeamID:         teamID,
		OrganisationID: orgID,
	}
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return nil, ErrAlreadyAssigned
		case database.IsForeignKeyViolation(err):
			// The employee or team was deleted after the lookups above.
			return nil, ErrAssignmentNotFound
		}
		return nil, logInternal(ctx, s.logger, "assignment.assign", err, orgID, teamID)
	}

	s.logger.InfoContext(ctx, "assigned employee to team",
		"organisation_id", orgID,
		"employee_id", employeeID,
		"team_id", teamID,
	)
	return &a, nil
}

func (s *AssignmentStore) Unassign(ctx context.Context, orgID, employeeID, teamID uint) error {
	if _, err := s.teams.Get(ctx, orgID, teamID); err != nil {
		return err
	}
	if _, err := s.employees.Get(ctx, orgID, employeeID); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("employee_id = ? AND team_id = ? AND organisation_id = ?", employeeID, teamID, orgID).
		Delete(&models.EmployeeTeam{})
	if result.Error != nil {
		return logInternal(ctx, s.logger, "assignment.unassign", result.Error, orgID, teamID)
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	s.logger.InfoContext(ctx, "unassigned employee from team",
		"organisation_id", orgID,
		"employee_id", employeeID,
		"team_id", teamID,
	)
	return nil
}

// ListMembers returns the employees of a team. Both the assignment and the
// employee must carry orgID.
func (s *AssignmentStore) ListMembers(ctx context.Context, orgID, teamID uint) ([]models.Employee, error) {
	if _, err := s.teams.Get(ctx, orgID, teamID); err != nil {
		return nil, err
	}

	members := []models.Employee{}
	if err := s.db.WithContext(ctx).
		Joins("JOIN employee_teams ON employee_teams.employee_id = employees.id").
		Where("employee_teams.team_id = ? AND employee_teams.organisation_id = ? AND employees.organisation_id = ?",
			teamID, orgID, orgID).
		Order("employees.id").
		Find(&members).Error; err != nil {
		return nil, logInternal(ctx, s.logger, "assignment.list_members", err, orgID, teamID)
	}
	return members, nil
}

// ListTeamsForEmployee returns the teams an employee belongs to.
func (s *AssignmentStore) ListTeamsForEmployee(ctx context.Context, orgID, employeeID uint) ([]models.Team, error) {
	if _, err := s.employees.Get(ctx, orgID, employeeID); err != nil {
		return nil, err
	}

	teams := []models.Team{}
	if err := s.db.WithContext(ctx).
		Joins("JOIN employee_teams ON employee_teams.team_id = teams.id").
		Where("employee_teams.employee_id = ? AND employee_teams.organisation_id = ? AND teams.organisation_id = ?",
			employeeID, orgID, orgID).
		Order("teams.id").
		Find(&teams).Error; err != nil {
		return nil, logInternal(ctx, s.logger, "assignment.list_teams", err, orgID, employeeID)
	}
	return teams, nil
}

// ListAll returns every assignment in the organisation.
func (s *AssignmentStore) ListAll(ctx context.Context, orgID uint) ([]models.EmployeeTeam, error) {
	rows := []models.EmployeeTeam{}
	if err := s.db.WithContext(ctx).
		Where("organisation_id = ?", orgID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, logInternal(ctx, s.logger, "assignment.list_all", err, orgID, 0)
	}
	return rows, nil
}
