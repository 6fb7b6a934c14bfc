package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/premintlabs/premintpool/internal/domain"
	"github.com/premintlabs/premintpool/internal/logger"
	"github.com/premintlabs/premintpool/internal/messaging"
	"github.com/premintlabs/premintpool/internal/premint"
	"github.com/premintlabs/premintpool/internal/store"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// SubmitPremint validates and stores a new premint (requires authentication)
	// POST /api/v1/premints
	SubmitPremint(c *gin.Context)

	// GetPremint retrieves a single premint by kind and id
	// GET /api/v1/premints/:kind/:id
	GetPremint(c *gin.Context)

	// ListPremints retrieves premints with optional filters
	// GET /api/v1/premints?kind=<kind>&signer=<address>&chain_id=<id>&seen_on_chain=<bool>&limit=<limit>&offset=<offset>
	ListPremints(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store     store.Store
	registry  *premint.Registry
	publisher messaging.Publisher
}

// NewHandler creates a new REST API handler
func NewHandler(st store.Store, registry *premint.Registry, publisher messaging.Publisher) Handler {
	return &handler{
		store:     st,
		registry:  registry,
		publisher: publisher,
	}
}

// SubmitPremint validates a premint payload and accepts it into the pool
func (h *handler) SubmitPremint(c *gin.Context) {
	var req SubmitPremintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	kind := domain.PremintKind(req.Kind)
	p, err := h.registry.Parse(kind, req.Payload)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownKind) {
			respondBadRequest(c, "Unknown premint kind", err.Error())
			return
		}
		respondValidationError(c, err.Error())
		return
	}

	if err := p.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	meta := p.Metadata()
	input := store.InsertPremintInput{
		Metadata: meta,
		JSON:     req.Payload,
	}

	if err := h.store.InsertPremint(c.Request.Context(), input); err != nil {
		switch {
		case errors.Is(err, domain.ErrPremintExists):
			respondConflict(c, "Premint already exists")
		case errors.Is(err, domain.ErrInvalidPremint):
			respondValidationError(c, err.Error())
		default:
			respondInternalError(c, err, "Failed to store premint")
		}
		return
	}

	logger.Info("Premint accepted",
		zap.String("kind", string(meta.Kind)),
		zap.String("premint_id", meta.ID),
		zap.String("signer", meta.Signer),
		zap.Uint64("chain_id", meta.ChainID))

	h.publishSubmitted(c, meta)

	record, err := h.store.GetPremint(c.Request.Context(), meta.Kind, meta.ID)
	if err != nil {
		respondInternalError(c, err, "Failed to load stored premint")
		return
	}

	c.JSON(http.StatusCreated, toPremintDTO(record))
}

// publishSubmitted publishes the submission event, best effort
func (h *handler) publishSubmitted(c *gin.Context, meta domain.PremintMetadata) {
	event := &domain.PremintEvent{
		EventID:   ulid.Make().String(),
		Type:      domain.PremintEventSubmitted,
		Kind:      meta.Kind,
		PremintID: meta.ID,
		ChainID:   meta.ChainID,
		Signer:    meta.Signer,
		Timestamp: time.Now(),
	}
	if err := h.publisher.PublishPremintEvent(c.Request.Context(), event); err != nil {
		logger.ErrorCtx(c.Request.Context(), err,
			zap.String("message", "Failed to publish submission event"),
			zap.String("premint_id", meta.ID))
	}
}

// GetPremint retrieves a single premint by its composite key
func (h *handler) GetPremint(c *gin.Context) {
	kind := domain.PremintKind(c.Param("kind"))
	id := c.Param("id")

	if !domain.IsValidKind(kind) {
		respondBadRequest(c, "Unknown premint kind")
		return
	}
	if id == "" {
		respondBadRequest(c, "Premint id is required")
		return
	}

	record, err := h.store.GetPremint(c.Request.Context(), kind, id)
	if err != nil {
		if errors.Is(err, domain.ErrPremintNotFound) {
			respondNotFound(c, "Premint not found")
			return
		}
		respondInternalError(c, err, "Failed to get premint")
		return
	}

	c.JSON(http.StatusOK, toPremintDTO(record))
}

// ListPremints retrieves premints with optional filters
func (h *handler) ListPremints(c *gin.Context) {
	queryParams, err := ParseListPremintsQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	if queryParams.Kind != nil && !domain.IsValidKind(domain.PremintKind(*queryParams.Kind)) {
		respondBadRequest(c, "Unknown premint kind")
		return
	}

	records, total, err := h.store.ListPremints(c.Request.Context(), queryParams.ToFilter())
	if err != nil {
		respondInternalError(c, err, "Failed to list premints")
		return
	}

	dtos := make([]*PremintDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toPremintDTO(record))
	}

	limit := queryParams.Limit
	if limit == 0 {
		limit = 50
	}

	c.JSON(http.StatusOK, ListPremintsResponse{
		Premints: dtos,
		Total:    total,
		Limit:    limit,
		Offset:   queryParams.Offset,
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}
