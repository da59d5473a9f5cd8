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

// RewardHandler handles reward CRUD requests
type RewardHandler struct {
	pipe  *pipeline.Pipeline
	store repositories.RecordStore
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(pipe *pipeline.Pipeline, store repositories.RecordStore) *RewardHandler {
	return &RewardHandler{
		pipe:  pipe,
		store: store,
	}
}

// HandleCreate grants a new reward to the resolved student. Reward IDs are
// always server-generated.
func (h *RewardHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	body := &models.CreateRewardRequest{}
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token:         req.BearerToken(),
		Body:          req.Body,
		Decode:        pipeline.DecodeInto(body),
		SuccessStatus: http.StatusCreated,
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			record := body.NewRewardRecord(id.TenantID, id.SubjectID)
			if err := h.store.Put(ctx, record); err != nil {
				return nil, err
			}
			return record, nil
		},
	})
	return result.Response(), nil
}

// HandleGet retrieves one reward by ID.
func (h *RewardHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	entityID := req.PathParam("id")
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Decode: func([]byte) (interface{}, error) {
			if entityID == "" {
				return nil, errMissingID("reward_id")
			}
			return nil, nil
		},
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			return h.store.Get(ctx, id.TenantID, entityID)
		},
	})
	return result.Response(), nil
}

// HandleList retrieves all rewards in the resolved tenant.
func (h *RewardHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			return h.store.ListByTenant(ctx, id.TenantID)
		},
	})
	return result.Response(), nil
}

// HandleUpdate merges new field values into an existing reward.
func (h *RewardHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	entityID := req.PathParam("id")
	body := &models.UpdateRewardRequest{}
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Body:  req.Body,
		Decode: func(raw []byte) (interface{}, error) {
			if entityID == "" {
				return nil, errMissingID("reward_id")
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

// HandleDelete removes a reward.
func (h *RewardHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	entityID := req.PathParam("id")
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Decode: func([]byte) (interface{}, error) {
			if entityID == "" {
				return nil, errMissingID("reward_id")
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
			return pipeline.MessageBody{Message: "Reward deleted successfully"}, nil
		},
	})
	return result.Response(), nil
}

// Gin adapters for the local development server.

func (h *RewardHandler) CreateReward(c *gin.Context) {
	resp, _ := h.HandleCreate(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *RewardHandler) GetReward(c *gin.Context) {
	resp, _ := h.HandleGet(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *RewardHandler) ListRewards(c *gin.Context) {
	resp, _ := h.HandleList(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *RewardHandler) UpdateReward(c *gin.Context) {
	resp, _ := h.HandleUpdate(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *RewardHandler) DeleteReward(c *gin.Context) {
	resp, _ := h.HandleDelete(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}
