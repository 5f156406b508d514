package handler

import (
	"net/http"
	"strings"

	"pressroom/internal/api"
	"pressroom/internal/app/authz"
	"pressroom/internal/common/security"
)

func bearerToken(req *api.Request) string {
	header := req.Header("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// optionalIdentity resolves the caller's identity when a bearer token is
// present. No token means anonymous (nil identity, no error); a present but
// invalid token is an authentication failure even on optional-auth routes.
func optionalIdentity(req *api.Request, tokens *security.TokenManager) (*authz.Identity, *api.Response) {
	token := bearerToken(req)
	if token == "" {
		return nil, nil
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		return nil, api.Error(http.StatusUnauthorized, "Invalid token")
	}
	return &authz.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		Name:   claims.Name,
	}, nil
}

// requireIdentity is optionalIdentity plus a 401 when no token was sent.
func requireIdentity(req *api.Request, tokens *security.TokenManager) (*authz.Identity, *api.Response) {
	identity, errResp := optionalIdentity(req, tokens)
	if errResp != nil {
		return nil, errResp
	}
	if identity == nil {
		return nil, api.Error(http.StatusUnauthorized, "Authentication required")
	}
	return identity, nil
}
