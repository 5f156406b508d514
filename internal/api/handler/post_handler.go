package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"pressroom/internal/api"
	"pressroom/internal/app/service"
	"pressroom/internal/common/security"
)

type PostHandler struct {
	postService *service.PostService
	tokens      *security.TokenManager
}

func NewPostHandler(postService *service.PostService, tokens *security.TokenManager) *PostHandler {
	return &PostHandler{postService: postService, tokens: tokens}
}

func (h *PostHandler) List(ctx context.Context, req *api.Request) *api.Response {
	identity, errResp := optionalIdentity(req, h.tokens)
	if errResp != nil {
		return errResp
	}

	page, _ := strconv.Atoi(req.Query["page"])
	limit, _ := strconv.Atoi(req.Query["limit"])

	result, err := h.postService.List(ctx, identity, page, limit)
	if err != nil {
		return api.ErrorFrom(err)
	}
	return api.Success(http.StatusOK, result)
}

func (h *PostHandler) Create(ctx context.Context, req *api.Request) *api.Response {
	identity, errResp := requireIdentity(req, h.tokens)
	if errResp != nil {
		return errResp
	}
	if len(req.Body) == 0 {
		return api.Error(http.StatusBadRequest, "Request body is required")
	}

	var input service.CreatePostRequest
	if err := json.Unmarshal(req.Body, &input); err != nil {
		return api.Error(http.StatusBadRequest, "Invalid request payload")
	}

	post, err := h.postService.Create(ctx, identity, input)
	if err != nil {
		return api.ErrorFrom(err)
	}
	return api.Success(http.StatusCreated, post)
}

func (h *PostHandler) Get(ctx context.Context, req *api.Request) *api.Response {
	identity, errResp := optionalIdentity(req, h.tokens)
	if errResp != nil {
		return errResp
	}

	post, err := h.postService.Get(ctx, identity, req.PathParams["id"])
	if err != nil {
		return api.ErrorFrom(err)
	}
	return api.Success(http.StatusOK, post)
}

func (h *PostHandler) Update(ctx context.Context, req *api.Request) *api.Response {
	identity, errResp := requireIdentity(req, h.tokens)
	if errResp != nil {
		return errResp
	}
	if len(req.Body) == 0 {
		return api.Error(http.StatusBadRequest, "Request body is required")
	}

	var input service.UpdatePostRequest
	if err := json.Unmarshal(req.Body, &input); err != nil {
		return api.Error(http.StatusBadRequest, "Invalid request payload")
	}

	post, err := h.postService.Update(ctx, identity, req.PathParams["id"], input)
	if err != nil {
		return api.ErrorFrom(err)
	}
	return api.Success(http.StatusOK, post)
}

func (h *PostHandler) Delete(ctx context.Context, req *api.Request) *api.Response {
	identity, errResp := requireIdentity(req, h.tokens)
	if errResp != nil {
		return errResp
	}

	if err := h.postService.Delete(ctx, identity, req.PathParams["id"]); err != nil {
		return api.ErrorFrom(err)
	}
	return api.Success(http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}
