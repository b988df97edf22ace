package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hugh/orgroster/internal/api/dto"
	"github.com/hugh/orgroster/internal/api/middleware"
	"github.com/hugh/orgroster/internal/api/respond"
	"github.com/hugh/orgroster/internal/auth"
)

type AuthHandler struct {
	authService auth.Authenticator
	validate    Validator
	logger      *slog.Logger
}

func NewAuthHandler(authService auth.Authenticator, validate Validator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, validate: validate, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	resp, err := h.authService.Register(r.Context(), auth.RegisterInput{
		OrgName:   req.OrgName,
		AdminName: req.AdminName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.AuthResponse{
		Token: resp.Token,
		User:  dto.UserFromModel(resp.User),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.AuthResponse{
		Token: resp.Token,
		User:  dto.UserFromModel(resp.User),
	})
}

// Me returns the authenticated user and their organisation.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.authService.GetUser(ctx, middleware.GetOrganisationID(ctx), middleware.GetUserID(ctx))
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.MeFromModel(user))
}
