package http

import (
	"net/http"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	GetMyStatus(w http.ResponseWriter, r *http.Request)
	GetUserStatus(w http.ResponseWriter, r *http.Request)
	ListDays(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// GetMyStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyStatus(w http.ResponseWriter, r *http.Request) {
	req := attendance.StatusRequest{Date: queryString(r, "date")}

	status, err := h.attendanceService.GetMyStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// GetUserStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetUserStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	req := attendance.StatusRequest{Date: queryString(r, "date")}

	status, err := h.attendanceService.GetUserStatus(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// ListDays implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListDays(w http.ResponseWriter, r *http.Request) {
	filter := attendance.DayRangeFilter{
		UserID:    queryString(r, "user_id"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	days, err := h.attendanceService.ListDays(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}
