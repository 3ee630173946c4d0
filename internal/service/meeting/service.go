package meeting

import (
	"context"
	"fmt"
	"math"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/meeting"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
)

type MeetingServiceImpl struct {
	meeting.MeetingRepository
}

func NewMeetingService(meetingRepository meeting.MeetingRepository) meeting.MeetingService {
	return &MeetingServiceImpl{MeetingRepository: meetingRepository}
}

// Create implements meeting.MeetingService. The caller becomes the organizer.
func (s *MeetingServiceImpl) Create(ctx context.Context, caller user.Caller, req meeting.CreateMeetingRequest) (meeting.MeetingResponse, error) {
	if !caller.Can(user.PermissionMeetingManage) {
		return meeting.MeetingResponse{}, meeting.ErrUnauthorizedAccess
	}
	if err := req.Validate(); err != nil {
		return meeting.MeetingResponse{}, err
	}

	created, err := s.MeetingRepository.Create(ctx, meeting.Meeting{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartAt:     req.Start,
		EndAt:       req.End,
		OrganizerID: caller.UserID,
		AttendeeIDs: req.AttendeeIDs,
	})
	if err != nil {
		return meeting.MeetingResponse{}, err
	}
	return meeting.NewMeetingResponse(created), nil
}

// Get implements meeting.MeetingService.
func (s *MeetingServiceImpl) Get(ctx context.Context, caller user.Caller, id string) (meeting.MeetingResponse, error) {
	found, err := s.MeetingRepository.GetByID(ctx, id)
	if err != nil {
		return meeting.MeetingResponse{}, err
	}
	if !found.Involves(caller.UserID) && !caller.Can(user.PermissionMeetingManage) {
		return meeting.MeetingResponse{}, meeting.ErrUnauthorizedAccess
	}
	return meeting.NewMeetingResponse(found), nil
}

// ListMine implements meeting.MeetingService.
func (s *MeetingServiceImpl) ListMine(ctx context.Context, caller user.Caller, filter meeting.MeetingFilter) (meeting.ListMeetingResponse, error) {
	if !caller.Can(user.PermissionMeetingViewOwn) {
		return meeting.ListMeetingResponse{}, meeting.ErrUnauthorizedAccess
	}
	filter.UserID = &caller.UserID
	return s.list(ctx, filter)
}

// List implements meeting.MeetingService.
func (s *MeetingServiceImpl) List(ctx context.Context, caller user.Caller, filter meeting.MeetingFilter) (meeting.ListMeetingResponse, error) {
	if !caller.Can(user.PermissionMeetingManage) {
		return meeting.ListMeetingResponse{}, meeting.ErrUnauthorizedAccess
	}
	return s.list(ctx, filter)
}

func (s *MeetingServiceImpl) list(ctx context.Context, filter meeting.MeetingFilter) (meeting.ListMeetingResponse, error) {
	if err := filter.Validate(); err != nil {
		return meeting.ListMeetingResponse{}, err
	}

	meetings, total, err := s.MeetingRepository.List(ctx, filter)
	if err != nil {
		return meeting.ListMeetingResponse{}, fmt.Errorf("failed to list meetings: %w", err)
	}

	resp := meeting.ListMeetingResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Meetings:   make([]meeting.MeetingResponse, 0, len(meetings)),
	}
	for _, m := range meetings {
		resp.Meetings = append(resp.Meetings, meeting.NewMeetingResponse(m))
	}
	return resp, nil
}

// canChange allows the organizer, or an admin, to edit a meeting.
func canChange(caller user.Caller, m meeting.Meeting) bool {
	if !caller.Can(user.PermissionMeetingManage) {
		return false
	}
	return caller.Is(m.OrganizerID) || caller.Role == user.RoleAdmin
}

// Update implements meeting.MeetingService.
func (s *MeetingServiceImpl) Update(ctx context.Context, caller user.Caller, req meeting.UpdateMeetingRequest) (meeting.MeetingResponse, error) {
	if err := req.Validate(); err != nil {
		return meeting.MeetingResponse{}, err
	}

	existing, err := s.MeetingRepository.GetByID(ctx, req.ID)
	if err != nil {
		return meeting.MeetingResponse{}, err
	}
	if !canChange(caller, existing) {
		return meeting.MeetingResponse{}, meeting.ErrUnauthorizedAccess
	}
	if err := req.Apply(&existing); err != nil {
		return meeting.MeetingResponse{}, err
	}

	updated, err := s.MeetingRepository.Update(ctx, existing)
	if err != nil {
		return meeting.MeetingResponse{}, err
	}
	return meeting.NewMeetingResponse(updated), nil
}

// Delete implements meeting.MeetingService.
func (s *MeetingServiceImpl) Delete(ctx context.Context, caller user.Caller, id string) error {
	existing, err := s.MeetingRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canChange(caller, existing) {
		return meeting.ErrUnauthorizedAccess
	}
	return s.MeetingRepository.Delete(ctx, id)
}
