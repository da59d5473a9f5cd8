package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rockie-classroom-api/internal/auth"
	"rockie-classroom-api/internal/models"
	"rockie-classroom-api/internal/pipeline"
	"rockie-classroom-api/internal/repositories"
	"rockie-classroom-api/internal/services"
	"rockie-classroom-api/pkg/lambda"
)

// PurchasableHandler handles purchasable catalog CRUD and purchases
type PurchasableHandler struct {
	pipe      *pipeline.Pipeline
	store     repositories.RecordStore
	purchases services.PurchaseService
}

// NewPurchasableHandler creates a new purchasable handler
func NewPurchasableHandler(pipe *pipeline.Pipeline, store repositories.RecordStore, purchases services.PurchaseService) *PurchasableHandler {
	return &PurchasableHandler{
		pipe:      pipe,
		store:     store,
		purchases: purchases,
	}
}

// HandleCreate lists a new purchasable item in the tenant catalog.
// Catalog entries are tenant-shared, so no ownership tag is set.
func (h *PurchasableHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	body := &models.CreatePurchasableRequest{}
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token:         req.BearerToken(),
		Body:          req.Body,
		Decode:        pipeline.DecodeInto(body),
		SuccessStatus: http.StatusCreated,
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			record := body.NewPurchasableRecord(id.TenantID)
			if err := h.store.Put(ctx, record); err != nil {
				return nil, err
			}
			return record, nil
		},
	})
	return result.Response(), nil
}

// HandleGet retrieves one purchasable by ID.
func (h *PurchasableHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	entityID := req.PathParam("id")
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Decode: func([]byte) (interface{}, error) {
			if entityID == "" {
				return nil, errMissingID("item_id")
			}
			return nil, nil
		},
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			return h.store.Get(ctx, id.TenantID, entityID)
		},
	})
	return result.Response(), nil
}

// HandleList retrieves the tenant catalog.
func (h *PurchasableHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			return h.store.ListByTenant(ctx, id.TenantID)
		},
	})
	return result.Response(), nil
}

// HandleUpdate merges new field values into an existing purchasable.
func (h *PurchasableHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	entityID := req.PathParam("id")
	body := &models.UpdatePurchasableRequest{}
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Body:  req.Body,
		Decode: func(raw []byte) (interface{}, error) {
			if entityID == "" {
				return nil, errMissingID("item_id")
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

// HandleDelete removes a purchasable from the catalog.
func (h *PurchasableHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	entityID := req.PathParam("id")
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token: req.BearerToken(),
		Decode: func([]byte) (interface{}, error) {
			if entityID == "" {
				return nil, errMissingID("item_id")
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
			return pipeline.MessageBody{Message: "Item deleted successfully"}, nil
		},
	})
	return result.Response(), nil
}

// HandleBuy purchases an item with the resolved student's coins.
func (h *PurchasableHandler) HandleBuy(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	body := &models.BuyItemRequest{}
	result := h.pipe.Run(ctx, &pipeline.Invocation{
		Token:  req.BearerToken(),
		Body:   req.Body,
		Decode: pipeline.DecodeInto(body),
		Execute: func(ctx context.Context, id auth.Identity, _ *models.Record) (interface{}, error) {
			tx, err := h.purchases.Buy(ctx, id, body)
			if err != nil {
				if errors.Is(err, services.ErrOutOfStock) || errors.Is(err, services.ErrInsufficientFunds) {
					return nil, &pipeline.ClientError{Status: http.StatusBadRequest, Message: err.Error()}
				}
				return nil, err
			}
			return map[string]interface{}{
				"message":     "Purchase successful",
				"transaction": tx,
			}, nil
		},
	})
	return result.Response(), nil
}

// Gin adapters for the local development server.

func (h *PurchasableHandler) CreatePurchasable(c *gin.Context) {
	resp, _ := h.HandleCreate(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *PurchasableHandler) GetPurchasable(c *gin.Context) {
	resp, _ := h.HandleGet(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *PurchasableHandler) ListPurchasables(c *gin.Context) {
	resp, _ := h.HandleList(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *PurchasableHandler) UpdatePurchasable(c *gin.Context) {
	resp, _ := h.HandleUpdate(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *PurchasableHandler) DeletePurchasable(c *gin.Context) {
	resp, _ := h.HandleDelete(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}

func (h *PurchasableHandler) BuyItem(c *gin.Context) {
	resp, _ := h.HandleBuy(c.Request.Context(), ginRequest(c))
	writeResponse(c, resp)
}
