package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/response"
)

// Handler handles HTTP requests for ledger event operations
type Handler struct {
	service *Service
}

// NewHandler creates a new ledger handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for event endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/expenses", h.CreateExpense)
	r.Post("/incomes", h.CreateIncome)
	r.Post("/transfers", h.CreateTransfer)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)

	// Group-based listing
	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// validationError maps the structural validation sentinels to 400 responses.
func validationError(w http.ResponseWriter, err error) bool {
	for _, sentinel := range []error{
		ErrInvalidAmount, ErrNegativeSplit, ErrSplitMismatch, ErrNoSplits, ErrSelfTransfer,
	} {
		if errors.Is(err, sentinel) {
			response.BadRequest(w, err.Error())
			return true
		}
	}
	return false
}

// CreateExpense handles POST /events/expenses
// @Summary      Record an expense
// @Description  Record an expense with automatic split calculation using EVEN, PERCENTAGE, or EXACT strategy. EVEN honors locked per-participant amounts.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=EventResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /events/expenses [post]
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	expense, err := h.service.RecordExpense(r.Context(), &req)
	if err != nil {
		if validationError(w, err) {
			return
		}
		// Split strategy validation failures are client errors too
		response.BadRequest(w, err.Error())
		return
	}

	response.JSON(w, http.StatusCreated, ToResponse(expense))
}

// CreateIncome handles POST /events/incomes
// @Summary      Record a personal income
// @Description  Record an income credited to exactly one participant. Income is never split.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body CreateIncomeRequest true "Income creation request"
// @Success      201 {object} response.APIResponse{data=EventResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /events/incomes [post]
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var req CreateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	income, err := h.service.RecordIncome(r.Context(), &req)
	if err != nil {
		if validationError(w, err) {
			return
		}
		response.InternalError(w, "Failed to record income")
		return
	}

	response.JSON(w, http.StatusCreated, ToResponse(income))
}

// CreateTransfer handles POST /events/transfers
// @Summary      Record a settlement transfer
// @Description  Record a direct peer-to-peer payment that retires debt between two participants
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body CreateTransferRequest true "Transfer creation request"
// @Success      201 {object} response.APIResponse{data=EventResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /events/transfers [post]
func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	transfer, err := h.service.RecordTransfer(r.Context(), &req)
	if err != nil {
		if validationError(w, err) {
			return
		}
		response.InternalError(w, "Failed to record transfer")
		return
	}

	response.JSON(w, http.StatusCreated, ToResponse(transfer))
}

// GetByID handles GET /events/{id}
// @Summary      Get event by ID
// @Tags         events
// @Produce      json
// @Param        id path string true "Event ID"
// @Success      200 {object} response.APIResponse{data=EventResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /events/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	ev, err := h.service.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get event")
		return
	}

	response.JSON(w, http.StatusOK, ToResponse(ev))
}

// ListByGroup handles GET /events/group/{groupId}
// @Summary      List events for a group
// @Tags         events
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]EventResponse}
// @Router       /events/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	events, total, err := h.service.ListEvents(r.Context(), groupID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list events")
		return
	}

	resp := make([]*EventResponse, len(events))
	for i, ev := range events {
		resp[i] = ToResponse(ev)
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	response.JSONWithMeta(w, http.StatusOK, resp, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	})
}

// Delete handles DELETE /events/{id}
// @Summary      Delete an event
// @Description  Events are immutable; an edit is a delete followed by a re-create
// @Tags         events
// @Param        id path string true "Event ID"
// @Success      204
// @Failure      404 {object} response.APIResponse
// @Router       /events/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	if err := h.service.DeleteEvent(r.Context(), id); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
