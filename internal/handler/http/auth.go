package http

import (
	"net/http"

	"github.com/chronoworks/timesheet-backend-go/internal/handler/http/response"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService jwt.Service
}

func NewAuthHandler(jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{
		jwtService: jwtService,
	}
}

// Logout implements AuthHandler. The token stays revoked until it expires on
// its own; the revocation map is process-local.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if raw := jwtauth.TokenFromHeader(r); raw != "" {
		h.jwtService.RevokeToken(raw)
	}

	response.SuccessWithMessage(w, "Logged out", nil)
}
