package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/recovery"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RecoveryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Decline(w http.ResponseWriter, r *http.Request)
	Settle(w http.ResponseWriter, r *http.Request)

	SettleDue(w http.ResponseWriter, r *http.Request)
	SuggestSlots(w http.ResponseWriter, r *http.Request)
}

type recoveryHandlerImpl struct {
	recoveryService recovery.RecoveryService
}

func NewRecoveryHandler(recoveryService recovery.RecoveryService) RecoveryHandler {
	return &recoveryHandlerImpl{
		recoveryService: recoveryService,
	}
}

// List implements RecoveryHandler.
func (h *recoveryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := recovery.RecoveryFilter{
		UserID:    queryString(r, "user_id"),
		Status:    queryString(r, "status"),
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
	}

	page, ok := queryInt(r, "page")
	if !ok {
		response.BadRequest(w, "page must be a number", nil)
		return
	}
	if page != nil {
		filter.Page = *page
	}
	limit, ok := queryInt(r, "limit")
	if !ok {
		response.BadRequest(w, "limit must be a number", nil)
		return
	}
	if limit != nil {
		filter.Limit = *limit
	}

	list, err := h.recoveryService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Requests, response.NewMeta(list.Page, list.Limit, list.TotalCount))
}

// Create implements RecoveryHandler.
func (h *recoveryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req recovery.CreateRecoveryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create recovery decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.recoveryService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Recovery request created successfully", created)
}

// Get implements RecoveryHandler.
func (h *recoveryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Recovery request ID is required", nil)
		return
	}

	req, err := h.recoveryService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, req)
}

// Update implements RecoveryHandler.
func (h *recoveryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req recovery.UpdateRecoveryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update recovery decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.recoveryService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recovery request updated successfully", updated)
}

// Delete implements RecoveryHandler.
func (h *recoveryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Recovery request ID is required", nil)
		return
	}

	if err := h.recoveryService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recovery request deleted successfully", nil)
}

// Approve implements RecoveryHandler.
func (h *recoveryHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	updated, err := h.recoveryService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recovery request approved successfully", updated)
}

// decodeReview reads an optional {"reason": "..."} body.
func decodeReview(r *http.Request) (recovery.ReviewRecoveryRequest, error) {
	req := recovery.ReviewRecoveryRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	req.ID = chi.URLParam(r, "id")
	return req, nil
}

// Reject implements RecoveryHandler.
func (h *recoveryHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReview(r)
	if err != nil {
		slog.Error("Reject recovery decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.recoveryService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recovery request rejected", updated)
}

// Accept implements RecoveryHandler.
func (h *recoveryHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	updated, err := h.recoveryService.Accept(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recovery proposal accepted", updated)
}

// Decline implements RecoveryHandler.
func (h *recoveryHandlerImpl) Decline(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReview(r)
	if err != nil {
		slog.Error("Decline recovery decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.recoveryService.Decline(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recovery proposal declined", updated)
}

// Settle implements RecoveryHandler.
func (h *recoveryHandlerImpl) Settle(w http.ResponseWriter, r *http.Request) {
	settled, err := h.recoveryService.Settle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recovery request settled", settled)
}

// SettleDue implements RecoveryHandler.
func (h *recoveryHandlerImpl) SettleDue(w http.ResponseWriter, r *http.Request) {
	res, err := h.recoveryService.SettleDue(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

// SuggestSlots implements RecoveryHandler.
func (h *recoveryHandlerImpl) SuggestSlots(w http.ResponseWriter, r *http.Request) {
	var req recovery.SlotRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SuggestSlots decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	slots, err := h.recoveryService.SuggestSlots(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slots)
}
