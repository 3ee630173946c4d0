package http

import (
	"net/http"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/office-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func leaveFilter(r *http.Request) leave.LeaveRequestFilter {
	filter := leave.LeaveRequestFilter{
		UserID:    queryPtr(r, "user_id"),
		Status:    queryPtr(r, "status"),
		LeaveType: queryPtr(r, "leave_type"),
		StartDate: queryPtr(r, "start_date"),
		EndDate:   queryPtr(r, "end_date"),
	}
	filter.Page, filter.Limit = pageParams(r)
	return filter
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	requests, err := l.leaveService.List(r.Context(), caller, leaveFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, requests, response.PageMeta(requests.Page, requests.Limit, requests.TotalCount, requests.TotalPages))
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	requests, err := l.leaveService.ListMine(r.Context(), caller, leaveFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, requests, response.PageMeta(requests.Page, requests.Limit, requests.TotalCount, requests.TotalPages))
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	request, err := l.leaveService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := l.leaveService.Create(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted successfully", created)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	approved, err := l.leaveService.Approve(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved successfully", approved)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	var req leave.RejectLeaveRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	rejected, err := l.leaveService.Reject(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected successfully", rejected)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	cancelled, err := l.leaveService.Cancel(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request cancelled successfully", cancelled)
}
