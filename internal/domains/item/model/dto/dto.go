package dto

import (
	bookingDto "shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/item/model"
	"shareit/shared"
	gDto "shareit/shared/dto"
)

// ItemResponse carries the last and next booking only when the viewer owns the item.
type ItemResponse struct {
	ID          string                           `json:"id"`
	Name        string                           `json:"name"`
	Description string                           `json:"description"`
	Available   bool                             `json:"available"`
	OwnerID     string                           `json:"owner_id"`
	RequestID   *string                          `json:"request_id,omitempty"`
	LastBooking *bookingDto.BookingShortResponse `json:"last_booking"`
	NextBooking *bookingDto.BookingShortResponse `json:"next_booking"`
	gDto.Metadata
}

func (r *ItemResponse) FromModel(m model.Item) {
	r.ID = m.ID
	r.Name = m.Name
	r.Description = m.Description
	r.Available = m.Available
	r.OwnerID = m.OwnerID
	r.RequestID = m.RequestID
	r.Metadata.FromModel(m.Metadata)
}

func (r *ItemResponse) WithSummary(s bookingDto.Summary) {
	var summary bookingDto.SummaryResponse
	summary.FromSummary(s)

	r.LastBooking = summary.LastBooking
	r.NextBooking = summary.NextBooking
}

type GetItemsResponse struct {
	Items     []ItemResponse `json:"items"`
	Page      int            `json:"page"`
	Size      int            `json:"size"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetItemsResponse) FromModels(models []model.Item, totalData int, page bookingDto.PageRequest) {
	r.Page = page.Page
	r.Size = page.Size
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, page.Size)

	r.Items = make([]ItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}
