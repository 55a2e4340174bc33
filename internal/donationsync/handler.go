package donationsync

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/templeflow/templeflow-ledger/internal/platform/httpx"
)

// Handler exposes the sync adapter over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers sync routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/donations", h.syncDonations)
}

type syncResponse struct {
	Count  int       `json:"count"`
	Posted []string  `json:"posted"`
	Failed []Failure `json:"failed"`
}

func (h *Handler) syncDonations(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Sync(r.Context())
	if err != nil {
		h.logger.Error("donation sync", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Sync Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, syncResponse{
		Count:  result.Count(),
		Posted: result.Posted,
		Failed: result.Failed,
	})
}
