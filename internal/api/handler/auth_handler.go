package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"pressroom/internal/api"
	"pressroom/internal/app/service"
	"pressroom/internal/common/security"
)

type AuthHandler struct {
	authService *service.AuthService
	tokens      *security.TokenManager
}

func NewAuthHandler(authService *service.AuthService, tokens *security.TokenManager) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

func (h *AuthHandler) Register(ctx context.Context, req *api.Request) *api.Response {
	if len(req.Body) == 0 {
		return api.Error(http.StatusBadRequest, "Request body is required")
	}
	var input service.RegisterRequest
	if err := json.Unmarshal(req.Body, &input); err != nil {
		return api.Error(http.StatusBadRequest, "Invalid request payload")
	}

	resp, err := h.authService.Register(ctx, input)
	if err != nil {
		return api.ErrorFrom(err)
	}
	return api.Success(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(ctx context.Context, req *api.Request) *api.Response {
	if len(req.Body) == 0 {
		return api.Error(http.StatusBadRequest, "Request body is required")
	}
	var input service.LoginRequest
	if err := json.Unmarshal(req.Body, &input); err != nil {
		return api.Error(http.StatusBadRequest, "Invalid request payload")
	}

	resp, err := h.authService.Login(ctx, input)
	if err != nil {
		return api.ErrorFrom(err)
	}
	return api.Success(http.StatusOK, resp)
}

func (h *AuthHandler) Profile(ctx context.Context, req *api.Request) *api.Response {
	identity, errResp := requireIdentity(req, h.tokens)
	if errResp != nil {
		return errResp
	}

	user, err := h.authService.Profile(ctx, identity.UserID)
	if err != nil {
		return api.ErrorFrom(err)
	}
	return api.Success(http.StatusOK, user)
}
