package batch

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/prism/pkg/handlers"
	"github.com/JaimeStill/prism/pkg/routes"
)

// Handler provides HTTP endpoints for batch verification runs.
type Handler struct {
	orchestrator *Orchestrator
	logger       *slog.Logger
}

// RunRequest selects what a batch run covers. An omitted batch key starts a
// new batch; omitted product keys select every catalog product for new
// batches and the unprocessed remainder for existing ones.
type RunRequest struct {
	BatchKey    *uuid.UUID  `json:"batch_key,omitempty"`
	ProductKeys []uuid.UUID `json:"product_keys,omitempty"`
}

// NewHandler creates a Handler over the given orchestrator.
func NewHandler(orchestrator *Orchestrator, logger *slog.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		logger:       logger.With("handler", "batch"),
	}
}

// Routes returns the route group definition for batch endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/batches",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Run},
			{Method: "GET", Pattern: "/{batchKey}/unprocessed", Handler: h.Unprocessed},
			{Method: "POST", Pattern: "/{batchKey}/products/{productKey}", Handler: h.RunProduct},
		},
	}
}

// Run starts or resumes a batch verification run and returns per-product outcomes.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
	}

	batchKey := uuid.Nil
	if req.BatchKey != nil {
		batchKey = *req.BatchKey
	}

	result, err := h.orchestrator.Run(r.Context(), batchKey, req.ProductKeys)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// RunProduct verifies a single product under an existing batch key.
func (h *Handler) RunProduct(w http.ResponseWriter, r *http.Request) {
	batchKey, err := uuid.Parse(r.PathValue("batchKey"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	productKey, err := uuid.Parse(r.PathValue("productKey"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.orchestrator.Run(r.Context(), batchKey, []uuid.UUID{productKey})
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Unprocessed returns the product keys the batch has not persisted yet.
func (h *Handler) Unprocessed(w http.ResponseWriter, r *http.Request) {
	batchKey, err := uuid.Parse(r.PathValue("batchKey"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	keys, err := h.orchestrator.Unprocessed(r.Context(), batchKey)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, keys)
}
