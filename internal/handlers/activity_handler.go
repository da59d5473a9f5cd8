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

// ActivityHandler handles activity CRUD requests
type ActivityHandler struct {
	pipe  *pipeline.Pipeline
	store repositories.RecordStore
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(pipe *pipeline.Pipeline, store repositories.RecordStore) *ActivityHandler {
	return &ActivityHandler{
		pipe:  pipe,
		store: store,
	}
}

// HandleCreate records a new activity owned by the resolved student.
func (h *ActivityHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	body := &models.CreateActivityRequest{}
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token:         req.BearerToken(),
		Body:          req.Body,
		Decode:        pipeline.DecodeInto(body),
		SuccessStatus: http.StatusCreated,
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			record := body.NewActivityRecord(id.TenantID, id.SubjectID)
			if err := h.store.Put(ctx, record); err != nil {
				return nil, err
			}
			return record, nil
		},
	})
	return result.Response(), nil
}

// HandleGet retrieves one activity by ID.
func (h *ActivityHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	entityID := req.PathParam("id")
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Decode: func([]byte) (interface{}, error) {
			if entityID == "" {
				return nil, errMissingID("activity_id")
			}
			return nil, nil
		},
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			return h.store.Get(ctx, id.TenantID, entityID)
		},
	})
	return result.Response(), nil
}

// HandleList retrieves all activities in the resolved tenant.
func (h *ActivityHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			return h.store.ListByTenant(ctx, id.TenantID)
		},
	})
	return result.Response(), nil
}

// HandleUpdate merges new field values into an existing activity. The
// current record is prefetched so the ownership check runs before the write.
func (h *ActivityHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	entityID := req.PathParam("id")
	body := &models.UpdateActivityRequest{}
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Body:  req.Body,
		Decode: func(raw []byte) (interface{}, error) {
			if entityID == "" {
				return nil, errMissingID("activity_id")
			}
			return pipeline.DecodeInto(body)(raw)
		},
		Prefetch: func(ctx context.Context, id auth.Identity) (*models.Record, error) {
			return h.store.Get(ctx, id.TenantID, entityID)
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

// HandleDelete removes an activity.
func (h *ActivityHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	entityID := req.PathParam("id")
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Decode: func([]byte) (interface{}, error) {
			if entityID == "" {
				return nil, errMissingID("activity_id")
			}
			return nil, nil
		},
		Prefetch: func(ctx context.Context, id auth.Identity) (*models.Record, error) {
			return h.store.Get(ctx, id.TenantID, entityID)
		},
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			if err := h.store.Delete(ctx, id.TenantID, entityID); err != nil {
				return nil, err
			}
			return pipeline.MessageBody{Message: "Activity deleted successfully"}, nil
		},
	})
	return result.Response(), nil
}

// Gin adapters for the local development server.

func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	resp, _ := h.HandleCreate(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *ActivityHandler) GetActivity(c *gin.Context) {
	resp, _ := h.HandleGet(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *ActivityHandler) ListActivities(c *gin.Context) {
	resp, _ := h.HandleList(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	resp, _ := h.HandleUpdate(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	resp, _ := h.HandleDelete(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}
