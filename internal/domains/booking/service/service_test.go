package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roombook/config"
	kafkaMocks "roombook/infras/kafka/mocks"
	"roombook/infras/otel/mocks"
	bookingMocks "roombook/internal/domains/booking/mocks"
	"roombook/internal/domains/booking/model"
	"roombook/internal/domains/booking/model/dto"
	"roombook/internal/domains/booking/service"
	roomMocks "roombook/internal/domains/room/mocks"
	cacheMocks "roombook/shared/cache/mocks"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	gModel "roombook/shared/model"
	"roombook/shared/timezone"
)

func newBookingService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockKafka)

	return svc, mockRepo, mockRoomRepo, mockCache
}

func TestBookingService_Create(t *testing.T) {
	svc, mockRepo, mockRoomRepo, mockCache := newBookingService(t)

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateBookingRequest{
				RoomID:      "room-1",
				Title:       "Sprint planning",
				BookingDate: "2025-06-02",
				StartTime:   "09:00",
				EndTime:     "10:00",
			},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					ExistOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "room does not exist",
			req: dto.CreateBookingRequest{
				RoomID:      "missing-room",
				Title:       "Sprint planning",
				BookingDate: "2025-06-02",
				StartTime:   "09:00",
				EndTime:     "10:00",
			},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "end time not after start time",
			req: dto.CreateBookingRequest{
				RoomID:      "room-1",
				Title:       "Sprint planning",
				BookingDate: "2025-06-02",
				StartTime:   "10:00",
				EndTime:     "10:00",
			},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "invalid date format",
			req: dto.CreateBookingRequest{
				RoomID:      "room-1",
				Title:       "Sprint planning",
				BookingDate: "02-06-2025",
				StartTime:   "09:00",
				EndTime:     "10:00",
			},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "overlapping booking",
			req: dto.CreateBookingRequest{
				RoomID:      "room-1",
				Title:       "Sprint planning",
				BookingDate: "2025-06-02",
				StartTime:   "09:00",
				EndTime:     "10:00",
			},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					ExistOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			req: dto.CreateBookingRequest{
				RoomID:      "room-1",
				Title:       "Sprint planning",
				BookingDate: "2025-06-02",
				StartTime:   "09:00",
				EndTime:     "10:00",
			},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					ExistOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	bookings := []model.Booking{
		{
			ID:          "booking-1",
			RoomID:      "room-1",
			RoomName:    "Boardroom",
			Title:       "Sprint planning",
			BookingDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			StartTime:   time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
			EndTime:     time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
			Status:      model.StatusConfirmed,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  "test-user",
				ModifiedBy: "test-user",
			},
		},
	}

	tests := []struct {
		name       string
		params     gDto.QueryParams
		setupMock  func()
		wantErr    bool
		wantResult dto.GetBookingsResponse
	}{
		{
			name:   "successful get all",
			params: gDto.QueryParams{Limit: 10, Page: 1},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookings, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantResult: dto.GetBookingsResponse{
				TotalData: 1,
				TotalPage: 1,
				Page:      1,
			},
		},
		{
			name:   "count error",
			params: gDto.QueryParams{Limit: 10, Page: 1},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
		{
			name:   "get all error",
			params: gDto.QueryParams{Limit: 10, Page: 1},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("get all error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetAll(context.Background(), tt.params, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantResult.TotalData, result.TotalData)
				assert.Equal(t, tt.wantResult.TotalPage, result.TotalPage)
				assert.Equal(t, tt.wantResult.Page, result.Page)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	booking := model.Booking{
		ID:          "booking-1",
		RoomID:      "room-1",
		RoomName:    "Boardroom",
		Title:       "Sprint planning",
		BookingDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:   time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
		Status:      model.StatusConfirmed,
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "booking-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, found in db",
			id:   "booking-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "booking-1",
		},
		{
			name: "booking not found",
			id:   "missing",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, result.ID)
					assert.Equal(t, "09:00", result.StartTime)
					assert.Equal(t, "10:00", result.EndTime)
				}
			}
		})
	}
}

func TestBookingService_GetMy(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	t.Run("missing user identity", func(t *testing.T) {
		_, err := svc.GetMy(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("lists own bookings", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
		result, err := svc.GetMy(ctx, gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Equal(t, 0, result.TotalData)
	})
}

func TestBookingService_Update(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	current := model.Booking{
		ID:          "booking-1",
		RoomID:      "room-1",
		Title:       "Sprint planning",
		BookingDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:   time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
		Status:      model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedBy: "owner-id",
		},
	}

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		id        string
		user      string
		role      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner updates title",
			req:  dto.UpdateBookingRequest{Title: "Retro"},
			id:   "booking-1",
			user: "owner-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				mockRepo.EXPECT().
					ExistOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1").
					Return(false, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "admin updates someone else's booking",
			req:  dto.UpdateBookingRequest{Status: model.StatusCancelled},
			id:   "booking-1",
			user: "other-user",
			role: constant.RoleBookingAdmin,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				mockRepo.EXPECT().
					ExistOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1").
					Return(false, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "non-owner without admin role",
			req:  dto.UpdateBookingRequest{Title: "Hijack"},
			id:   "booking-1",
			user: "other-user",
			role: constant.RoleUser,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:      "empty update request",
			req:       dto.UpdateBookingRequest{},
			id:        "booking-1",
			user:      "owner-id",
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "booking not found",
			req:  dto.UpdateBookingRequest{Title: "Retro"},
			id:   "missing",
			user: "owner-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "reschedule into occupied slot",
			req:  dto.UpdateBookingRequest{StartTime: "10:00", EndTime: "11:00"},
			id:   "booking-1",
			user: "owner-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				mockRepo.EXPECT().
					ExistOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1").
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "reschedule with end before start",
			req:  dto.UpdateBookingRequest{EndTime: "08:00"},
			id:   "booking-1",
			user: "owner-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			if tt.role != "" {
				ctx = context.WithValue(ctx, constant.ContextKeyUserRole, tt.role)
			}

			err := svc.Update(ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	current := model.Booking{
		ID:     "booking-1",
		RoomID: "room-1",
		Metadata: gModel.Metadata{
			CreatedBy: "owner-id",
		},
	}

	tests := []struct {
		name      string
		id        string
		user      string
		role      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner deletes booking",
			id:   "booking-1",
			user: "owner-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "non-owner cannot delete",
			id:   "booking-1",
			user: "other-user",
			role: constant.RoleUser,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "booking not found",
			id:   "missing",
			user: "owner-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			if tt.role != "" {
				ctx = context.WithValue(ctx, constant.ContextKeyUserRole, tt.role)
			}

			err := svc.Delete(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_TimeSlots(t *testing.T) {
	svc, mockRepo, _, _ := newBookingService(t)

	t.Run("full grid without room and date", func(t *testing.T) {
		result, err := svc.TimeSlots(context.Background(), "", "")

		assert.NoError(t, err)
		assert.Len(t, result.Slots, 17)
		assert.Equal(t, "09:00", result.Slots[0].Time)
		assert.Equal(t, "09:30", result.Slots[1].Time)
		assert.Equal(t, "17:00", result.Slots[len(result.Slots)-1].Time)

		for _, slot := range result.Slots {
			assert.True(t, slot.Available)
		}
	})

	t.Run("booked slots are unavailable", func(t *testing.T) {
		bookings := []model.Booking{
			{
				ID:        "booking-1",
				RoomID:    "room-1",
				StartTime: time.Date(0, 1, 1, 9, 30, 0, 0, time.UTC),
				EndTime:   time.Date(0, 1, 1, 10, 30, 0, 0, time.UTC),
				Status:    model.StatusConfirmed,
			},
		}

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bookings, nil)

		result, err := svc.TimeSlots(context.Background(), "room-1", "2025-06-02")

		assert.NoError(t, err)
		assert.Len(t, result.Slots, 17)

		byTime := make(map[string]bool, len(result.Slots))
		for _, slot := range result.Slots {
			byTime[slot.Time] = slot.Available
		}

		assert.True(t, byTime["09:00"])
		assert.False(t, byTime["09:30"])
		assert.False(t, byTime["10:00"])
		assert.True(t, byTime["10:30"])
	})

	t.Run("invalid date format", func(t *testing.T) {
		_, err := svc.TimeSlots(context.Background(), "room-1", "06/02/2025")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.TimeSlots(context.Background(), "room-1", "2025-06-02")

		assert.Error(t, err)
	})
}
