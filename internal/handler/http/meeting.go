package http

import (
	"net/http"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/meeting"
	"github.com/cmlabs-hris/office-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MeetingHandler interface {
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type meetingHandlerImpl struct {
	meetingService meeting.MeetingService
}

func NewMeetingHandler(meetingService meeting.MeetingService) MeetingHandler {
	return &meetingHandlerImpl{meetingService: meetingService}
}

func meetingFilter(r *http.Request) meeting.MeetingFilter {
	filter := meeting.MeetingFilter{
		UserID: queryPtr(r, "user_id"),
		From:   queryPtr(r, "from"),
		To:     queryPtr(r, "to"),
	}
	filter.Page, filter.Limit = pageParams(r)
	return filter
}

// ListMine implements MeetingHandler.
func (h *meetingHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	meetings, err := h.meetingService.ListMine(r.Context(), caller, meetingFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, meetings, response.PageMeta(meetings.Page, meetings.Limit, meetings.TotalCount, meetings.TotalPages))
}

// List implements MeetingHandler.
func (h *meetingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	meetings, err := h.meetingService.List(r.Context(), caller, meetingFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, meetings, response.PageMeta(meetings.Page, meetings.Limit, meetings.TotalCount, meetings.TotalPages))
}

// Get implements MeetingHandler.
func (h *meetingHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	found, err := h.meetingService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// Create implements MeetingHandler.
func (h *meetingHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	var req meeting.CreateMeetingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.meetingService.Create(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Meeting scheduled successfully", created)
}

// Update implements MeetingHandler.
func (h *meetingHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	var req meeting.UpdateMeetingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.meetingService.Update(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Meeting updated successfully", updated)
}

// Delete implements MeetingHandler.
func (h *meetingHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	if err := h.meetingService.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Meeting cancelled successfully", nil)
}
