package report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/group"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/middleware"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/response"
)

// Handler handles HTTP requests for report endpoints
type Handler struct {
	service *Service
}

// NewHandler creates a new report handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for report endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}/summary", h.GetSummary)
	r.Get("/group/{groupId}/breakdown/{participantId}", h.GetBreakdown)

	return r
}

// GetSummary handles GET /reports/group/{groupId}/summary
// @Summary      Shareable settlement summary
// @Description  Plain-text summary of balances and settlement instructions, suitable for the share sheet. The viewer (X-Viewer-ID) is marked in the output.
// @Tags         reports
// @Produce      plain
// @Param        groupId path int true "Group ID"
// @Success      200 {string} string
// @Failure      404 {object} response.APIResponse
// @Router       /reports/group/{groupId}/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	viewerID, _ := middleware.GetViewerID(r.Context())

	summary, err := h.service.Summary(r.Context(), groupID, viewerID)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build summary")
		return
	}

	response.Text(w, http.StatusOK, summary)
}

// GetBreakdown handles GET /reports/group/{groupId}/breakdown/{participantId}
// @Summary      Per-participant expense breakdown
// @Description  Lists the expenses where the participant was excluded or carried a custom share
// @Tags         reports
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        participantId path int true "Participant ID"
// @Success      200 {object} response.APIResponse{data=BreakdownResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /reports/group/{groupId}/breakdown/{participantId} [get]
func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}
	participantID, err := strconv.ParseInt(chi.URLParam(r, "participantId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid participant ID")
		return
	}

	breakdown, err := h.service.ParticipantBreakdown(r.Context(), groupID, participantID)
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound), errors.Is(err, group.ErrParticipantNotFound):
			response.NotFound(w, err.Error())
		default:
			response.InternalError(w, "Failed to build breakdown")
		}
		return
	}

	response.JSON(w, http.StatusOK, breakdown)
}
