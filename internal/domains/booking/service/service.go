package service

import (
	"context"
	"fmt"
	"time"

	"roombook/config"
	"roombook/infras/kafka"
	"roombook/infras/otel"
	"roombook/internal/domains/booking/model"
	"roombook/internal/domains/booking/model/dto"
	"roombook/internal/domains/booking/repository"
	roomModel "roombook/internal/domains/room/model"
	roomRepo "roombook/internal/domains/room/repository"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	"roombook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	eventBookingCreated   = "booking.created"
	eventBookingUpdated   = "booking.updated"
	eventBookingCancelled = "booking.cancelled"
	eventBookingDeleted   = "booking.deleted"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetMy(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
	TimeSlots(ctx context.Context, roomID, date string) (dto.GetTimeSlotsResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	kafka    kafka.Client
}

func New(repo repository.Booking, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		kafka:    kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	// Validate that the room exists
	roomExists, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !roomExists {
		return failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if !booking.EndTime.After(booking.StartTime) {
		return failure.BadRequestFromString("end time must be after start time") // nolint:wrapcheck
	}

	overlap, err := s.repo.ExistOverlap(ctx, booking.RoomID, booking.BookingDate, booking.StartTime, booking.EndTime, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if overlap {
		return failure.Conflict("room is already booked for this time") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	s.afterChange(ctx, eventBookingCreated, booking.ID, booking.RoomID, user)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Page, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// GetMy lists the bookings created by the requesting user, on top of any
// extra filters the caller passes.
func (s *serviceImpl) GetMy(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMy")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized("missing user identity") // nolint:wrapcheck
	}

	filter.Operator = gDto.FilterGroupOperatorAnd
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldCreatedBy,
		Value:    user,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !s.canModify(ctx, current, user) {
		return failure.ResourceRestrictedError // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	schedule, err := s.resolveSchedule(current, req)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if !schedule.EndTime.After(schedule.StartTime) {
		return failure.BadRequestFromString("end time must be after start time") // nolint:wrapcheck
	}

	overlap, err := s.repo.ExistOverlap(ctx, current.RoomID, schedule.BookingDate, schedule.StartTime, schedule.EndTime, current.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if overlap {
		return failure.Conflict("room is already booked for this time") // nolint:wrapcheck
	}

	if req.BookingDate != constant.Empty {
		updatedFields[model.FieldBookingDate] = schedule.BookingDate
	}
	if req.StartTime != constant.Empty {
		updatedFields[model.FieldStartTime] = schedule.StartTime
	}
	if req.EndTime != constant.Empty {
		updatedFields[model.FieldEndTime] = schedule.EndTime
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	event := eventBookingUpdated
	if req.Status == model.StatusCancelled {
		event = eventBookingCancelled
	}

	s.afterChange(ctx, event, current.ID, current.RoomID, user)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !s.canModify(ctx, current, user) {
		return failure.ResourceRestrictedError // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.afterChange(ctx, eventBookingDeleted, current.ID, current.RoomID, user)

	return nil
}

// TimeSlots returns the half-hour booking grid for a room on a date.
// Without a room or date every slot is reported available.
func (s *serviceImpl) TimeSlots(ctx context.Context, roomID, date string) (res dto.GetTimeSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TimeSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	var bookings []model.Booking

	if roomID != constant.Empty && date != constant.Empty {
		bookingDate, parseErr := time.Parse(constant.DateOnlyFormat, date)
		if parseErr != nil {
			return res, failure.BadRequestFromString("invalid date format, expected YYYY-MM-DD") // nolint:wrapcheck
		}

		filter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldBookingDate, Value: bookingDate, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldStatus, Value: model.StatusCancelled, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
			},
		}

		bookings, err = s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get bookings for time slots")

			return res, fmt.Errorf("failed to get bookings for time slots: %w", err)
		}
	}

	openAt := time.Date(0, time.January, 1, constant.BusinessOpenHour, 0, 0, 0, time.UTC)
	closeAt := time.Date(0, time.January, 1, constant.BusinessCloseHour, 0, 0, 0, time.UTC)

	for slot := openAt; !slot.After(closeAt); slot = slot.Add(time.Duration(constant.SlotStepMinutes) * time.Minute) {
		available := true

		for _, booking := range bookings {
			start := asClock(booking.StartTime)
			end := asClock(booking.EndTime)

			if !slot.Before(start) && slot.Before(end) {
				available = false

				break
			}
		}

		res.Slots = append(res.Slots, dto.TimeSlot{
			Time:      slot.Format(constant.TimeOnlyFormat),
			Available: available,
		})
	}

	return res, nil
}

// canModify allows the booking's creator and booking admins.
func (s *serviceImpl) canModify(ctx context.Context, booking model.Booking, user string) bool {
	if booking.CreatedBy == user {
		return true
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return role == constant.RoleBookingAdmin || role == constant.RoleSuperAdmin
}

type schedule struct {
	BookingDate time.Time
	StartTime   time.Time
	EndTime     time.Time
}

// resolveSchedule merges requested date/time changes over the current booking.
func (s *serviceImpl) resolveSchedule(current model.Booking, req dto.UpdateBookingRequest) (schedule, error) {
	resolved := schedule{
		BookingDate: current.BookingDate,
		StartTime:   asClock(current.StartTime),
		EndTime:     asClock(current.EndTime),
	}

	if req.BookingDate != constant.Empty {
		bookingDate, err := time.Parse(constant.DateOnlyFormat, req.BookingDate)
		if err != nil {
			return resolved, err //nolint:wrapcheck
		}
		resolved.BookingDate = bookingDate
	}

	if req.StartTime != constant.Empty {
		startTime, err := time.Parse(constant.TimeOnlyFormat, req.StartTime)
		if err != nil {
			return resolved, err //nolint:wrapcheck
		}
		resolved.StartTime = startTime
	}

	if req.EndTime != constant.Empty {
		endTime, err := time.Parse(constant.TimeOnlyFormat, req.EndTime)
		if err != nil {
			return resolved, err //nolint:wrapcheck
		}
		resolved.EndTime = endTime
	}

	return resolved, nil
}

// asClock strips the date part so times from different days compare by clock.
func asClock(t time.Time) time.Time {
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// afterChange invalidates caches and publishes the booking event.
func (s *serviceImpl) afterChange(ctx context.Context, event, bookingID, roomID, user string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, bookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		if !s.cfg.Kafka.Enable {
			return
		}

		message := kafka.Message{
			Key: bookingID,
			Value: dto.BookingEvent{
				Event:     event,
				BookingID: bookingID,
				RoomID:    roomID,
				User:      user,
				Timestamp: timezone.Now().Format(constant.DateFormat),
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, message); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}
	}()
}
