package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hugh/orgroster/internal/api/dto"
	"github.com/hugh/orgroster/internal/api/middleware"
	"github.com/hugh/orgroster/internal/api/respond"
	"github.com/hugh/orgroster/internal/api/validation"
	"github.com/hugh/orgroster/internal/store"
)

type EmployeeHandler struct {
	employees EmployeeStore
	validate  *validation.Validator
	logger    *slog.Logger
}

func NewEmployeeHandler(employees EmployeeStore, validate *validation.Validator, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, validate: validate, logger: logger}
}

func (h *EmployeeHandler) fields(req dto.EmployeeRequest) store.EmployeeFields {
	return store.EmployeeFields{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     h.validate.NormalizePhone(req.Phone),
	}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EmployeeRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	emp, err := h.employees.Create(r.Context(), middleware.GetOrganisationID(r.Context()), h.fields(req))
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusCreated, dto.EmployeeFromModel(emp))
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	emps, err := h.employees.List(r.Context(), middleware.GetOrganisationID(r.Context()))
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.EmployeesFromModels(emps))
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	emp, err := h.employees.Get(r.Context(), middleware.GetOrganisationID(r.Context()), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.EmployeeFromModel(emp))
}

// Update replaces every field of the employee.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	var req dto.EmployeeRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	emp, err := h.employees.Update(r.Context(), middleware.GetOrganisationID(r.Context()), id, h.fields(req))
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.EmployeeFromModel(emp))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	if err := h.employees.Delete(r.Context(), middleware.GetOrganisationID(r.Context()), id); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.SuccessResponse{Message: "Employee deleted"})
}
