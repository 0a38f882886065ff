package dto

import (
	"fmt"
	"math"
	"shareit/internal/domains/booking/model"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/timezone"
	"time"
)

type CreateBookingRequest struct {
	ItemID string `json:"item_id" validate:"required,notblank"`
	Start  string `json:"start"   validate:"required,timestamp"`
	End    string `json:"end"     validate:"required,timestamp"`
}

// Interval parses start and end into UTC instants. Ordering is checked by the
// service, not here.
func (c *CreateBookingRequest) Interval() (start, end time.Time, err error) {
	start, err = timezone.ParseTimestamp(c.Start)
	if err != nil {
		return start, end, err
	}

	end, err = timezone.ParseTimestamp(c.End)
	if err != nil {
		return start, end, err
	}

	return start.UTC(), end.UTC(), nil
}

type ItemShortResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookerShortResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     string              `json:"id"`
	Start  string              `json:"start"`
	End    string              `json:"end"`
	Status string              `json:"status"`
	Item   ItemShortResponse   `json:"item"`
	Booker BookerShortResponse `json:"booker"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.Start = timezone.Format(m.Start, constant.DateFormat)
	r.End = timezone.Format(m.End, constant.DateFormat)
	r.Status = m.Status.String()
	r.Item = ItemShortResponse{ID: m.ItemID, Name: m.ItemName}
	r.Booker = BookerShortResponse{ID: m.BookerID, Name: m.BookerName}
	r.Metadata.FromModel(m.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	Page      int               `json:"page"`
	Size      int               `json:"size"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData int, page PageRequest) {
	r.Page = page.Page
	r.Size = page.Size
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, page.Size)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// PageRequest is zero-based: Page 0 is the first page.
type PageRequest struct {
	Page int
	Size int
}

// Validate rejects negative pages, non-positive sizes and pages whose row
// offset does not fit in an int.
func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return failure.InvalidPagination(fmt.Sprintf("page must not be negative, got %d", p.Page)) // nolint:wrapcheck
	}

	if p.Size < 1 {
		return failure.InvalidPagination(fmt.Sprintf("size must be positive, got %d", p.Size)) // nolint:wrapcheck
	}

	if p.Page >= math.MaxInt/p.Size {
		return failure.InvalidPagination(fmt.Sprintf("page %d is out of range for size %d", p.Page, p.Size)) // nolint:wrapcheck
	}

	return nil
}

// FromOffset converts an absolute row offset into the page containing it.
func FromOffset(from, size int) PageRequest {
	if size < 1 {
		return PageRequest{Page: from, Size: size}
	}

	if from < 0 {
		return PageRequest{Page: -1, Size: size}
	}

	return PageRequest{Page: from / size, Size: size}
}

// Params converts to the one-based paging the generic repository expects.
func (p PageRequest) Params(sortBy, sortDir string) gDto.QueryParams {
	return gDto.QueryParams{
		Page:    p.Page + 1,
		Limit:   p.Size,
		SortBy:  sortBy,
		SortDir: sortDir,
	}
}

// ListRequest is a classified listing from one side of the booking.
type ListRequest struct {
	SubjectID string
	Role      model.Role
	State     string
	PageRequest
}

// BookingShortResponse is the compact form used in item summaries.
type BookingShortResponse struct {
	ID       string `json:"id"`
	BookerID string `json:"booker_id"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

func NewBookingShortResponse(m *model.Booking) *BookingShortResponse {
	if m == nil {
		return nil
	}

	return &BookingShortResponse{
		ID:       m.ID,
		BookerID: m.BookerID,
		Start:    timezone.Format(m.Start, constant.DateFormat),
		End:      timezone.Format(m.End, constant.DateFormat),
	}
}

// Summary is an item's closest approved bookings around a reference instant.
type Summary struct {
	Last *model.Booking
	Next *model.Booking
}

type SummaryResponse struct {
	LastBooking *BookingShortResponse `json:"last_booking"`
	NextBooking *BookingShortResponse `json:"next_booking"`
}

func (r *SummaryResponse) FromSummary(s Summary) {
	r.LastBooking = NewBookingShortResponse(s.Last)
	r.NextBooking = NewBookingShortResponse(s.Next)
}

type CompletedResponse struct {
	ItemID    string `json:"item_id"`
	Completed bool   `json:"completed"`
}

const (
	EventBookingCreated = "booking.created"
	EventBookingDecided = "booking.decided"
)

// BookingEvent is published after a booking is created or decided.
type BookingEvent struct {
	Type       string `json:"type"`
	BookingID  string `json:"booking_id"`
	ItemID     string `json:"item_id"`
	BookerID   string `json:"booker_id"`
	OwnerID    string `json:"owner_id"`
	Status     string `json:"status"`
	Start      string `json:"start"`
	End        string `json:"end"`
	ActorID    string `json:"actor_id"`
	OccurredAt string `json:"occurred_at"`
}

func NewBookingEvent(eventType string, m model.Booking, actorID string, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  m.ID,
		ItemID:     m.ItemID,
		BookerID:   m.BookerID,
		OwnerID:    m.OwnerID,
		Status:     m.Status.String(),
		Start:      timezone.Format(m.Start, constant.DateFormat),
		End:        timezone.Format(m.End, constant.DateFormat),
		ActorID:    actorID,
		OccurredAt: timezone.Format(at, constant.DateFormat),
	}
}
