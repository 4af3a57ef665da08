package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roombook/config"
	"roombook/infras/otel/mocks"
	"roombook/internal/domains/preference/model/dto"
	"roombook/internal/domains/preference/service"
	roomDto "roombook/internal/domains/room/model/dto"
	roomServiceMocks "roombook/internal/domains/room/service/mocks"
	cacheMocks "roombook/shared/cache/mocks"
	"roombook/shared/constant"
	"roombook/shared/failure"
)

func newPreferenceService(t *testing.T) (service.Preference, *roomServiceMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRooms := roomServiceMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRooms, cfg, mockCache, mockOtel)

	return svc, mockRooms, mockCache
}

func userContext(user string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, user)
}

func TestPreferenceService_ToggleFavorite(t *testing.T) {
	svc, mockRooms, mockCache := newPreferenceService(t)

	room := roomDto.RoomResponse{ID: "room-1", Name: "Boardroom"}

	t.Run("adds a new favorite", func(t *testing.T) {
		mockRooms.EXPECT().
			Get(gomock.Any(), "room-1").
			Return(room, nil)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), 0).
			Return(nil)

		mockRooms.EXPECT().
			GetByIDs(gomock.Any(), []string{"room-1"}).
			Return([]roomDto.RoomResponse{room}, nil)

		result, err := svc.ToggleFavorite(userContext("user-1"), dto.ToggleFavoriteRequest{RoomID: "room-1"})

		assert.NoError(t, err)
		assert.Equal(t, []string{"room-1"}, result.RoomIDs)
		assert.Len(t, result.Rooms, 1)
	})

	t.Run("removes an existing favorite", func(t *testing.T) {
		mockRooms.EXPECT().
			Get(gomock.Any(), "room-1").
			Return(room, nil)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			SetArg(2, []string{"room-1", "room-2"}).
			Return(nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), 0).
			Return(nil)

		mockRooms.EXPECT().
			GetByIDs(gomock.Any(), []string{"room-2"}).
			Return([]roomDto.RoomResponse{{ID: "room-2"}}, nil)

		result, err := svc.ToggleFavorite(userContext("user-1"), dto.ToggleFavoriteRequest{RoomID: "room-1"})

		assert.NoError(t, err)
		assert.Equal(t, []string{"room-2"}, result.RoomIDs)
	})

	t.Run("room does not exist", func(t *testing.T) {
		mockRooms.EXPECT().
			Get(gomock.Any(), "missing").
			Return(roomDto.RoomResponse{}, failure.NotFound("room not found"))

		_, err := svc.ToggleFavorite(userContext("user-1"), dto.ToggleFavoriteRequest{RoomID: "missing"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("missing user identity", func(t *testing.T) {
		_, err := svc.ToggleFavorite(context.Background(), dto.ToggleFavoriteRequest{RoomID: "room-1"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestPreferenceService_GetFavorites(t *testing.T) {
	svc, mockRooms, mockCache := newPreferenceService(t)

	t.Run("empty set when nothing stored", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRooms.EXPECT().
			GetByIDs(gomock.Any(), []string{}).
			Return([]roomDto.RoomResponse{}, nil)

		result, err := svc.GetFavorites(userContext("user-1"))

		assert.NoError(t, err)
		assert.Empty(t, result.RoomIDs)
		assert.Empty(t, result.Rooms)
	})

	t.Run("resolves stored favorites", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			SetArg(2, []string{"room-1"}).
			Return(nil)

		mockRooms.EXPECT().
			GetByIDs(gomock.Any(), []string{"room-1"}).
			Return([]roomDto.RoomResponse{{ID: "room-1"}}, nil)

		result, err := svc.GetFavorites(userContext("user-1"))

		assert.NoError(t, err)
		assert.Equal(t, []string{"room-1"}, result.RoomIDs)
	})

	t.Run("missing user identity", func(t *testing.T) {
		_, err := svc.GetFavorites(context.Background())

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestPreferenceService_Theme(t *testing.T) {
	svc, _, mockCache := newPreferenceService(t)

	t.Run("saves a valid theme", func(t *testing.T) {
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), constant.ThemeDark, 0).
			Return(nil)

		err := svc.SetTheme(userContext("user-1"), dto.SetThemeRequest{Theme: constant.ThemeDark})

		assert.NoError(t, err)
	})

	t.Run("rejects an unknown theme", func(t *testing.T) {
		err := svc.SetTheme(userContext("user-1"), dto.SetThemeRequest{Theme: "sepia"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("returns stored theme", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			SetArg(2, constant.ThemeDark).
			Return(nil)

		result, err := svc.GetTheme(userContext("user-1"))

		assert.NoError(t, err)
		assert.Equal(t, constant.ThemeDark, result.Theme)
	})

	t.Run("defaults to light when nothing stored", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		result, err := svc.GetTheme(userContext("user-1"))

		assert.NoError(t, err)
		assert.Equal(t, constant.ThemeLight, result.Theme)
	})
}

func TestPreferenceService_LastViewed(t *testing.T) {
	svc, mockRooms, mockCache := newPreferenceService(t)

	room := roomDto.RoomResponse{ID: "room-1", Name: "Boardroom"}

	t.Run("saves last viewed room", func(t *testing.T) {
		mockRooms.EXPECT().
			Get(gomock.Any(), "room-1").
			Return(room, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), "room-1", 3600).
			Return(nil)

		err := svc.SetLastViewed(userContext("user-1"), dto.SetLastViewedRequest{RoomID: "room-1"})

		assert.NoError(t, err)
	})

	t.Run("returns stored room", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			SetArg(2, "room-1").
			Return(nil)

		mockRooms.EXPECT().
			Get(gomock.Any(), "room-1").
			Return(room, nil)

		result, err := svc.GetLastViewed(userContext("user-1"))

		assert.NoError(t, err)
		assert.NotNil(t, result.Room)
		assert.Equal(t, "room-1", result.Room.ID)
	})

	t.Run("nothing stored yields empty response", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		result, err := svc.GetLastViewed(userContext("user-1"))

		assert.NoError(t, err)
		assert.Nil(t, result.Room)
	})

	t.Run("deleted room yields empty response", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			SetArg(2, "gone-room").
			Return(nil)

		mockRooms.EXPECT().
			Get(gomock.Any(), "gone-room").
			Return(roomDto.RoomResponse{}, failure.NotFound("room not found"))

		result, err := svc.GetLastViewed(userContext("user-1"))

		assert.NoError(t, err)
		assert.Nil(t, result.Room)
	})
}
