package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func attendanceFilter(r *http.Request) attendance.AttendanceFilter {
	filter := attendance.AttendanceFilter{
		UserID:    queryPtr(r, "user_id"),
		StartDate: queryPtr(r, "start_date"),
		EndDate:   queryPtr(r, "end_date"),
		Status:    queryPtr(r, "status"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}
	filter.Page, filter.Limit = pageParams(r)
	return filter
}

// Submit implements AttendanceHandler.
func (h *attendanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	var req attendance.SubmitAttendanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	saved, err := h.attendanceService.Submit(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Attendance recorded successfully", saved)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	records, err := h.attendanceService.ListMine(r.Context(), caller, attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, records, response.PageMeta(records.Page, records.Limit, records.TotalCount, records.TotalPages))
}

// MySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	summary, err := h.attendanceService.Summary(r.Context(), caller, attendance.SummaryRequest{
		UserID:    &caller.UserID,
		StartDate: queryPtr(r, "start_date"),
		EndDate:   queryPtr(r, "end_date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	summary, err := h.attendanceService.Summary(r.Context(), caller, attendance.SummaryRequest{
		UserID:    queryPtr(r, "user_id"),
		StartDate: queryPtr(r, "start_date"),
		EndDate:   queryPtr(r, "end_date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	records, err := h.attendanceService.List(r.Context(), caller, attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, records, response.PageMeta(records.Page, records.Limit, records.TotalCount, records.TotalPages))
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	buf, err := h.attendanceService.ExportTimesheet(r.Context(), caller, attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("timesheet-%s.xlsx", time.Now().Format("20060102"))
	response.Attachment(w, filename, xlsxContentType, buf)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	record, err := h.attendanceService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	if err := h.attendanceService.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}
