package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/orgroster/internal/apperr"
	"github.com/hugh/orgroster/internal/database/models"
	"github.com/hugh/orgroster/internal/store"
)

const maxBodyBytes = 1 << 20

var (
	ErrInvalidBody = apperr.Validation("Invalid request body", nil)
	ErrInvalidID   = apperr.Validation("Invalid id", map[string]string{"id": "must be a positive integer"})
)

type EmployeeStore interface {
	Create(ctx context.Context, orgID uint, fields store.EmployeeFields) (*models.Employee, error)
	List(ctx context.Context, orgID uint) ([]models.Employee, error)
	Get(ctx context.Context, orgID, id uint) (*models.Employee, error)
	Update(ctx context.Context, orgID, id uint, fields store.EmployeeFields) (*models.Employee, error)
	Delete(ctx context.Context, orgID, id uint) error
}

type TeamStore interface {
	Create(ctx context.Context, orgID uint, fields store.TeamFields) (*models.Team, error)
	List(ctx context.Context, orgID uint) ([]models.Team, error)
	Get(ctx context.Context, orgID, id uint) (*models.Team, error)
	Update(ctx context.Context, orgID, id uint, patch store.TeamPatch) (*models.Team, error)
	Delete(ctx context.Context, orgID, id uint) error
}

type AssignmentStore interface {
	Assign(ctx context.Context, orgID, employeeID, teamID uint) (*models.EmployeeTeam, error)
	Unassign(ctx context.Context, orgID, employeeID, teamID uint) error
	ListMembers(ctx context.Context, orgID, teamID uint) ([]models.Employee, error)
	ListTeamsForEmployee(ctx context.Context, orgID, employeeID uint) ([]models.Team, error)
	ListAll(ctx context.Context, orgID uint) ([]models.EmployeeTeam, error)
}

var (
	_ EmployeeStore   = (*store.EmployeeStore)(nil)
	_ TeamStore       = (*store.TeamStore)(nil)
	_ AssignmentStore = (*store.AssignmentStore)(nil)
)

// Validator checks decoded request bodies.
type Validator interface {
	Struct(s interface{}) error
}

// decodeJSON reads a bounded JSON body into v and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, val Validator, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("Request body is required", nil)
		}
		return ErrInvalidBody
	}
	return val.Struct(v)
}

func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}
