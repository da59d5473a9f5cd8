package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rockie-classroom-api/internal/pipeline"
	"rockie-classroom-api/internal/repositories"
	"rockie-classroom-api/internal/services"
	"rockie-classroom-api/pkg/lambda"
)

// AuthHandler handles login requests. Login mints the credential the
// pipeline checks, so it is the one handler that does not run through the
// pipeline itself.
type AuthHandler struct {
	auth services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleLogin checks credentials and returns a fresh access token.
func (h *AuthHandler) HandleLogin(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	loginReq := &services.LoginRequest{}
	if len(req.Body) > 0 {
		if err := json.Unmarshal(req.Body, loginReq); err != nil {
			result := pipeline.Result{
				Status: http.StatusBadRequest,
				Body:   pipeline.ErrorBody{Error: "Invalid request body: " + err.Error()},
			}
			return result.Response(), nil
		}
	}

	resp, err := h.auth.Login(ctx, loginReq)
	if err != nil {
		result := loginFailure(err)
		return result.Response(), nil
	}

	result := pipeline.Result{Status: http.StatusOK, Body: resp}
	return result.Response(), nil
}

func loginFailure(err error) pipeline.Result {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return pipeline.Result{
			Status: http.StatusForbidden,
			Body:   pipeline.ErrorBody{Error: "Invalid credentials"},
		}
	case repositories.IsValidation(err):
		return pipeline.Result{
			Status: http.StatusBadRequest,
			Body:   pipeline.ErrorBody{Error: "Validation failed: " + err.Error()},
		}
	default:
		logrus.WithError(err).Error("Login failed")
		return pipeline.Result{
			Status: http.StatusInternalServerError,
			Body:   pipeline.ErrorBody{Error: "Internal server error"},
		}
	}
}

// Login is the gin adapter for the local development server.
func (h *AuthHandler) Login(c *gin.Context) {
	resp, _ := h.HandleLogin(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}
