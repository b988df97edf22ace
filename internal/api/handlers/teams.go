package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hugh/orgroster/internal/api/dto"
	"github.com/hugh/orgroster/internal/api/middleware"
	"github.com/hugh/orgroster/internal/api/respond"
	"github.com/hugh/orgroster/internal/store"
)

type TeamHandler struct {
	teams    TeamStore
	validate Validator
	logger   *slog.Logger
}

func NewTeamHandler(teams TeamStore, validate Validator, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{teams: teams, validate: validate, logger: logger}
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTeamRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	team, err := h.teams.Create(r.Context(), middleware.GetOrganisationID(r.Context()), store.TeamFields{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusCreated, dto.TeamFromModel(team))
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.List(r.Context(), middleware.GetOrganisationID(r.Context()))
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.TeamsFromModels(teams))
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	team, err := h.teams.Get(r.Context(), middleware.GetOrganisationID(r.Context()), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.TeamFromModel(team))
}

// Update merges the given fields into the team; absent or empty ones are kept.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	var req dto.UpdateTeamRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	team, err := h.teams.Update(r.Context(), middleware.GetOrganisationID(r.Context()), id, store.TeamPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.TeamFromModel(team))
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	if err := h.teams.Delete(r.Context(), middleware.GetOrganisationID(r.Context()), id); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.SuccessResponse{Message: "Team deleted"})
}
