// Package pipeline implements the authenticated tenant-scoped request
// pipeline every entity handler runs through.
//
// The stage order is fixed: authorization header check, token validation,
// identity resolution, body validation, ownership precheck, store operation.
// Each stage failure translates immediately into a terminal response; no
// stage is skipped or reordered, and no error crosses the pipeline boundary
// unconverted.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"rockie-classroom-api/internal/auth"
	"rockie-classroom-api/internal/models"
	"rockie-classroom-api/internal/repositories"
)

// Messages surfaced to callers. Server-side failure detail stays in the
// logs; these are the only strings a client sees for each terminal state.
const (
	msgMissingToken  = "Missing Authorization token"
	msgForbidden     = "Unauthorized Access"
	msgOwnership     = "Unauthorized Access"
	msgInternalError = "Internal server error"
)

// Invocation describes one entity operation to run through the pipeline.
type Invocation struct {
	// Token is the bearer token from the Authorization header.
	Token string

	// Body is the raw request body; may be empty for read and delete
	// operations.
	Body []byte

	// Decode parses the body into the operation's request type. The returned
	// value is validated against its struct tags. Nil when the operation takes
	// no body.
	Decode func(body []byte) (interface{}, error)

	// Prefetch fetches the current record for mutate and delete operations so
	// the ownership check runs before the store write. Nil skips the check
	// (creates and reads).
	Prefetch func(ctx context.Context, id auth.Identity) (*models.Record, error)

	// Execute performs the single store operation. current is the prefetched
	// record, nil when Prefetch was not set.
	Execute func(ctx context.Context, id auth.Identity, current *models.Record) (interface{}, error)

	// SuccessStatus overrides the 200 default for the terminal success state.
	SuccessStatus int
}

// Pipeline composes the token validator, identity resolver, body validation
// and store operation into one deterministic sequence. Dependencies are
// injected so tests can substitute fakes.
type Pipeline struct {
	tokens     auth.TokenValidator
	identities auth.IdentityResolver
	validate   *validator.Validate
	logger     *logrus.Logger
}

// New creates a pipeline over the given validator and resolver.
func New(tokens auth.TokenValidator, identities auth.IdentityResolver, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pipeline{
		tokens:     tokens,
		identities: identities,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Run executes the canonical stage order and returns the terminal result.
// It never returns an error: every failure maps to a terminal status.
func (p *Pipeline) Run(ctx context.Context, inv *Invocation) *Result {
	// Stage 1: the Authorization header must be present. Short-circuits
	// before any external call.
	if inv.Token == "" {
		return errorResult(http.StatusBadRequest, msgMissingToken)
	}

	// Stage 2: validate the token via the external validator.
	if err := p.tokens.Validate(ctx, inv.Token); err != nil {
		return p.authFailure(err)
	}

	// Stage 3: resolve tenant and student identity. A validated token must
	// always resolve; failure here is a server error, never a 403.
	identity, err := p.identities.Resolve(ctx, inv.Token)
	if err != nil {
		p.logger.WithError(err).Error("Identity resolution failed for validated token")
		return errorResult(http.StatusInternalServerError, msgInternalError)
	}

	// Stage 4: parse and validate the request body.
	if inv.Decode != nil {
		decoded, err := inv.Decode(inv.Body)
		if err != nil {
			return errorResult(http.StatusBadRequest, "Invalid request body: "+err.Error())
		}
		if decoded != nil {
			if err := p.validate.Struct(decoded); err != nil {
				return errorResult(http.StatusBadRequest, "Validation failed: "+err.Error())
			}
		}
	}

	// Stage 5: ownership precheck for mutate and delete operations.
	var current *models.Record
	if inv.Prefetch != nil {
		current, err = inv.Prefetch(ctx, identity)
		if err != nil {
			return p.storeFailure("prefetch", err)
		}
		if current != nil && !current.OwnedBy(identity.SubjectID) {
			return errorResult(http.StatusForbidden, msgOwnership)
		}
	}

	// Stage 6: the single store operation.
	payload, err := inv.Execute(ctx, identity, current)
	if err != nil {
		return p.storeFailure("execute", err)
	}

	status := inv.SuccessStatus
	if status == 0 {
		status = http.StatusOK
	}
	return &Result{Status: status, Body: payload}
}

// authFailure maps stage 1-2 errors to their terminal states.
func (p *Pipeline) authFailure(err error) *Result {
	var rejection *auth.RejectionError
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return errorResult(http.StatusBadRequest, msgMissingToken)
	case errors.As(err, &rejection):
		reason := rejection.Reason
		if reason == "" {
			reason = msgForbidden
		}
		return errorResult(http.StatusForbidden, reason)
	default:
		p.logger.WithError(err).Error("Token validator unavailable")
		return errorResult(http.StatusInternalServerError, msgInternalError)
	}
}

// ClientError lets an operation report a caller-addressable failure with an
// explicit status, e.g. an out-of-stock purchase. The message is shown
// verbatim.
type ClientError struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e *ClientError) Error() string {
	return e.Message
}

// storeFailure maps stage 5-6 errors to their terminal states. Store detail
// is logged and never forwarded.
func (p *Pipeline) storeFailure(stage string, err error) *Result {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return errorResult(clientErr.Status, clientErr.Message)
	}
	switch {
	case repositories.IsNotFound(err):
		return errorResult(http.StatusNotFound, "Record not found")
	case repositories.IsDuplicate(err):
		return errorResult(http.StatusConflict, "Record already exists")
	case repositories.IsValidation(err):
		return errorResult(http.StatusBadRequest, "Validation failed: "+err.Error())
	default:
		p.logger.WithError(err).WithField("stage", stage).Error("Store operation failed")
		return errorResult(http.StatusInternalServerError, msgInternalError)
	}
}

// DecodeInto returns a Decode function that unmarshals the body into dst and
// hands dst to struct validation. An empty body decodes to the zero value so
// required-field validation reports the missing fields.
func DecodeInto(dst interface{}) func([]byte) (interface{}, error) {
	return func(body []byte) (interface{}, error) {
		if len(body) > 0 {
			if err := json.Unmarshal(body, dst); err != nil {
				return nil, err
			}
		}
		return dst, nil
	}
}
