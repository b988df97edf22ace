package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hugh/orgroster/internal/api/dto"
	"github.com/hugh/orgroster/internal/api/middleware"
	"github.com/hugh/orgroster/internal/api/respond"
)

type AssignmentHandler struct {
	assignments AssignmentStore
	validate    Validator
	logger      *slog.Logger
}

func NewAssignmentHandler(assignments AssignmentStore, validate Validator, logger *slog.Logger) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, validate: validate, logger: logger}
}

func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	var req dto.AssignmentRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	if _, err := h.assignments.Assign(r.Context(), middleware.GetOrganisationID(r.Context()), req.EmployeeID, teamID); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.SuccessResponse{Message: "Employee assigned to team"})
}

// Unassign reads the employee id from the request body, as Assign does.
func (h *AssignmentHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	var req dto.AssignmentRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	if err := h.assignments.Unassign(r.Context(), middleware.GetOrganisationID(r.Context()), req.EmployeeID, teamID); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.SuccessResponse{Message: "Employee unassigned from team"})
}

func (h *AssignmentHandler) Members(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	emps, err := h.assignments.ListMembers(r.Context(), middleware.GetOrganisationID(r.Context()), teamID)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.EmployeesFromModels(emps))
}

func (h *AssignmentHandler) EmployeeTeams(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	teams, err := h.assignments.ListTeamsForEmployee(r.Context(), middleware.GetOrganisationID(r.Context()), employeeID)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.TeamsFromModels(teams))
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.assignments.ListAll(r.Context(), middleware.GetOrganisationID(r.Context()))
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.AssignmentsFromModels(rows))
}
