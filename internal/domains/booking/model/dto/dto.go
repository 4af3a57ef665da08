package dto

import (
	"time"

	"github.com/google/uuid"

	"roombook/internal/domains/booking/model"
	"roombook/shared"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
	"roombook/shared/pagination"
	"roombook/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID      string `json:"room_id"      validate:"required"`
	Title       string `json:"title"        validate:"required,max=200"`
	Description string `json:"description"  validate:"omitempty,max=1000"`
	BookingDate string `json:"booking_date" validate:"required"`
	StartTime   string `json:"start_time"   validate:"required"`
	EndTime     string `json:"end_time"     validate:"required"`
	Status      string `json:"status"       validate:"omitempty,oneof=pending confirmed cancelled"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	bookingDate, err := time.Parse(constant.DateOnlyFormat, c.BookingDate)
	if err != nil {
		return model.Booking{}, err
	}

	startTime, err := time.Parse(constant.TimeOnlyFormat, c.StartTime)
	if err != nil {
		return model.Booking{}, err
	}

	endTime, err := time.Parse(constant.TimeOnlyFormat, c.EndTime)
	if err != nil {
		return model.Booking{}, err
	}

	status := model.StatusConfirmed
	if c.Status != "" {
		status = c.Status
	}

	return model.Booking{
		ID:          uuid.NewString(),
		RoomID:      c.RoomID,
		Title:       c.Title,
		Description: c.Description,
		BookingDate: bookingDate,
		StartTime:   startTime,
		EndTime:     endTime,
		Status:      status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingRequest struct {
	Title       string `db:"title"          json:"title"       validate:"omitempty,max=200"`
	Description string `db:"description"    json:"description" validate:"omitempty,max=1000"`
	BookingDate string `json:"booking_date" validate:"omitempty"`
	StartTime   string `json:"start_time"   validate:"omitempty"`
	EndTime     string `json:"end_time"     validate:"omitempty"`
	Status      string `db:"status"         json:"status"     validate:"omitempty,oneof=pending confirmed cancelled"`
}

type BookingResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	RoomName    string `json:"room_name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.Title = model.Title
	r.Description = model.Description
	r.BookingDate = model.BookingDate.Format(constant.DateOnlyFormat)
	r.StartTime = model.StartTime.Format(constant.TimeOnlyFormat)
	r.EndTime = model.EndTime.Format(constant.TimeOnlyFormat)
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse   `json:"bookings"`
	TotalPage int                 `json:"total_page"`
	TotalData int                 `json:"total_data"`
	Page      int                 `json:"page"`
	Pages     []pagination.Marker `json:"pages"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, page, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Page = pagination.Clamp(page, r.TotalPage)
	r.Pages = pagination.Window(r.Page, r.TotalPage)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type GetTimeSlotsResponse struct {
	Slots []TimeSlot `json:"slots"`
}

// BookingEvent is the payload published to Kafka on booking changes.
type BookingEvent struct {
	Event     string `json:"event"`
	BookingID string `json:"booking_id"`
	RoomID    string `json:"room_id,omitempty"`
	User      string `json:"user,omitempty"`
	Timestamp string `json:"timestamp"`
}
