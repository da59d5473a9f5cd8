package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/sirupsen/logrus"
)

// DefaultValidateTimeout bounds the validator invocation, the single place a
// request may hang. Timeouts surface as ErrValidatorUnavailable.
const DefaultValidateTimeout = 5 * time.Second

// InvokeAPI is the subset of the Lambda client the validator uses.
type InvokeAPI interface {
	Invoke(ctx context.Context, params *awslambda.InvokeInput, optFns ...func(*awslambda.Options)) (*awslambda.InvokeOutput, error)
}

// LambdaValidator validates tokens by synchronously invoking the external
// validate-access-token function. Exactly one invocation per call, no
// retries; failures propagate as ErrValidatorUnavailable.
type LambdaValidator struct {
	client       InvokeAPI
	functionName string
	timeout      time.Duration
	logger       *logrus.Logger
}

// NewLambdaValidator creates a validator bound to the given function name.
func NewLambdaValidator(client InvokeAPI, functionName string, logger *logrus.Logger) *LambdaValidator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LambdaValidator{
		client:       client,
		functionName: functionName,
		timeout:      DefaultValidateTimeout,
		logger:       logger,
	}
}

// WithTimeout overrides the invocation timeout.
func (v *LambdaValidator) WithTimeout(timeout time.Duration) *LambdaValidator {
	v.timeout = timeout
	return v
}

type validateRequest struct {
	Token string `json:"token"`
}

type validateResponse struct {
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

// Validate invokes the external validator once and interprets its
// {statusCode, body} response. 403 means rejected; anything malformed or
// unreachable means the decision could not be made.
func (v *LambdaValidator) Validate(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if v.functionName == "" {
		return unavailable(errors.New("validate function not configured"))
	}

	payload, err := json.Marshal(validateRequest{Token: token})
	if err != nil {
		return unavailable(err)
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	out, err := v.client.Invoke(ctx, &awslambda.InvokeInput{
		FunctionName: aws.String(v.functionName),
		Payload:      payload,
	})
	if err != nil {
		v.logger.WithError(err).WithField("function", v.functionName).Error("Token validator invocation failed")
		return unavailable(err)
	}
	if out.FunctionError != nil {
		v.logger.WithField("function", v.functionName).WithField("function_error", *out.FunctionError).Error("Token validator returned a function error")
		return unavailable(fmt.Errorf("function error: %s", *out.FunctionError))
	}

	resp := validateResponse{}
	if err := json.Unmarshal(out.Payload, &resp); err != nil {
		return unavailable(fmt.Errorf("malformed validator response: %w", err))
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusForbidden:
		return &RejectionError{Reason: rejectionReason(resp.Body)}
	default:
		// Anything outside {200, 403} is a validator contract violation.
		return unavailable(fmt.Errorf("unexpected validator status %d", resp.StatusCode))
	}
}

// rejectionReason extracts an opaque reason string from the validator body.
// The body may be a bare JSON string or an object with an error field; in
// either case only the short message is surfaced.
func rejectionReason(body json.RawMessage) string {
	if len(body) == 0 {
		return ""
	}

	var reason string
	if err := json.Unmarshal(body, &reason); err == nil {
		return reason
	}

	var wrapped struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if wrapped.Error != "" {
			return wrapped.Error
		}
		return wrapped.Message
	}
	return ""
}
