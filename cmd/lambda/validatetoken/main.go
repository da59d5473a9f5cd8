package main

import (
	"context"
	"errors"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"rockie-classroom-api/internal/auth"
	"rockie-classroom-api/pkg/server"
)

// validateEvent is the direct-invoke payload. This function is called by the
// other functions rather than through API Gateway, so the event is the bare
// token document.
type validateEvent struct {
	Token string `json:"token"`
}

type validateResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func handler(ctx context.Context, event validateEvent) (validateResponse, error) {
	container, err := server.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		return validateResponse{StatusCode: 500, Body: "Internal server error"}, nil
	}

	validator := auth.NewStoreValidator(container.Tokens)

	err = validator.Validate(ctx, event.Token)
	switch {
	case err == nil:
		return validateResponse{StatusCode: 200, Body: "Token is valid"}, nil
	case errors.Is(err, auth.ErrMissingToken):
		return validateResponse{StatusCode: 400, Body: "Missing Authorization token"}, nil
	case auth.IsRejection(err):
		return validateResponse{StatusCode: 403, Body: err.Error()}, nil
	default:
		logrus.WithError(err).Error("Token validation failed")
		return validateResponse{StatusCode: 500, Body: "Internal server error"}, nil
	}
}

func main() {
	awslambda.Start(handler)
}
