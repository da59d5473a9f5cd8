package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"rockie-classroom-api/internal/auth"
	"rockie-classroom-api/internal/models"
	"rockie-classroom-api/internal/pipeline"
	"rockie-classroom-api/internal/repositories"
	"rockie-classroom-api/pkg/lambda"
)

// RockieHandler handles the per-student rockie. A rockie is keyed by its
// owner's student ID, so every operation targets the resolved identity's own
// record and no path parameter is needed.
type RockieHandler struct {
	pipe  *pipeline.Pipeline
	store repositories.RecordStore
}

// NewRockieHandler creates a new rockie handler
func NewRockieHandler(pipe *pipeline.Pipeline, store repositories.RecordStore) *RockieHandler {
	return &RockieHandler{
		pipe:  pipe,
		store: store,
	}
}

// HandleCreate creates the student's rockie with seeded defaults. A second
// create for the same student conflicts on the composite key.
func (h *RockieHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	body := &models.CreateRockieRequest{}
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token:         req.BearerToken(),
		Body:          req.Body,
		Decode:        pipeline.DecodeInto(body),
		SuccessStatus: http.StatusCreated,
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			record := body.NewRockieRecord(id.TenantID, id.SubjectID)
			if err := h.store.Put(ctx, record); err != nil {
				return nil, err
			}
			return record, nil
		},
	})
	return result.Response(), nil
}

// HandleGet retrieves the student's rockie.
func (h *RockieHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			return h.store.Get(ctx, id.TenantID, id.SubjectID)
		},
	})
	return result.Response(), nil
}

// HandleUpdate merges new values into the student's rockie.
func (h *RockieHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	body := &models.UpdateRockieRequest{}
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token:  req.BearerToken(),
		Body:   req.Body,
		Decode: pipeline.DecodeInto(body),
		Prefetch: func(ctx context.Context, id auth.Identity) (*models.Record, error) {
			return h.store.Get(ctx, id.TenantID, id.SubjectID)
		},
		Execute: func(ctx context.Context, id auth.Identity, current *models.Record) (interface{}, error) {
			body.ApplyTo(current)
			if err := h.store.Update(ctx, current); err != nil {
				return nil, err
			}
			return current, nil
		},
	})
	return result.Response(), nil
}

// HandleDelete removes the student's rockie.
func (h *RockieHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Prefetch: func(ctx context.Context, id auth.Identity) (*models.Record, error) {
			return h.store.Get(ctx, id.TenantID, id.SubjectID)
		},
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			if err := h.store.Delete(ctx, id.TenantID, id.SubjectID); err != nil {
				return nil, err
			}
			return pipeline.MessageBody{Message: "Rockie deleted successfully"}, nil
		},
	})
	return result.Response(), nil
}

// Gin adapters for the local development server.

func (h *RockieHandler) CreateRockie(c *gin.Context) {
	resp, _ := h.HandleCreate(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *RockieHandler) GetRockie(c *gin.Context) {
	resp, _ := h.HandleGet(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *RockieHandler) UpdateRockie(c *gin.Context) {
	resp, _ := h.HandleUpdate(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *RockieHandler) DeleteRockie(c *gin.Context) {
	resp, _ := h.HandleDelete(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}
