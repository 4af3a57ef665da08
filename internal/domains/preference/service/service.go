package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"roombook/config"
	"roombook/infras/otel"
	"roombook/internal/domains/preference/model/dto"
	roomService "roombook/internal/domains/room/service"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/constant"
	"roombook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheFavoriteRooms = "preference:favorites"
	cacheTheme         = "preference:theme"
	cacheLastViewed    = "preference:lastviewed"

	// Preferences have no expiry; the last viewed room is a short-lived hint.
	noExpiry = 0
)

type Preference interface {
	ToggleFavorite(ctx context.Context, req dto.ToggleFavoriteRequest) (dto.GetFavoritesResponse, error)
	GetFavorites(ctx context.Context) (dto.GetFavoritesResponse, error)
	SetTheme(ctx context.Context, req dto.SetThemeRequest) error
	GetTheme(ctx context.Context) (dto.GetThemeResponse, error)
	SetLastViewed(ctx context.Context, req dto.SetLastViewedRequest) error
	GetLastViewed(ctx context.Context) (dto.GetLastViewedResponse, error)
}

type serviceImpl struct {
	rooms roomService.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(rooms roomService.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Preference {
	return &serviceImpl{
		rooms: rooms,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// ToggleFavorite adds the room to the user's favorites, or removes it when
// already present. Toggling twice restores the original set.
func (s *serviceImpl) ToggleFavorite(ctx context.Context, req dto.ToggleFavoriteRequest) (res dto.GetFavoritesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleFavorite")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userFromContext(ctx)
	if err != nil {
		return res, err
	}

	// The room must exist before it can be favorited.
	if _, err = s.rooms.Get(ctx, req.RoomID); err != nil {
		return res, err
	}

	ids := s.favoriteIDs(ctx, user)

	if idx := slices.Index(ids, req.RoomID); idx >= 0 {
		ids = slices.Delete(ids, idx, idx+1)
	} else {
		ids = append(ids, req.RoomID)
	}

	cacheKey := shared.BuildCacheKey(cacheFavoriteRooms, user)
	if err = s.cache.Save(ctx, cacheKey, ids, noExpiry); err != nil {
		log.Error().Err(err).Msg("failed to save favorites")

		return res, fmt.Errorf("failed to save favorites: %w", err)
	}

	return s.resolveFavorites(ctx, ids)
}

func (s *serviceImpl) GetFavorites(ctx context.Context) (res dto.GetFavoritesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetFavorites")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userFromContext(ctx)
	if err != nil {
		return res, err
	}

	return s.resolveFavorites(ctx, s.favoriteIDs(ctx, user))
}

func (s *serviceImpl) SetTheme(ctx context.Context, req dto.SetThemeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetTheme")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userFromContext(ctx)
	if err != nil {
		return err
	}

	if req.Theme != constant.ThemeLight && req.Theme != constant.ThemeDark {
		return failure.BadRequestFromString("theme must be light or dark") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheTheme, user)
	if err = s.cache.Save(ctx, cacheKey, req.Theme, noExpiry); err != nil {
		log.Error().Err(err).Msg("failed to save theme")

		return fmt.Errorf("failed to save theme: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetTheme(ctx context.Context) (res dto.GetThemeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTheme")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userFromContext(ctx)
	if err != nil {
		return res, err
	}

	var theme string

	cacheKey := shared.BuildCacheKey(cacheTheme, user)
	if err := s.cache.Get(ctx, cacheKey, &theme); err != nil || theme == constant.Empty {
		theme = constant.ThemeLight
	}

	res.Theme = theme

	return res, nil
}

func (s *serviceImpl) SetLastViewed(ctx context.Context, req dto.SetLastViewedRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetLastViewed")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userFromContext(ctx)
	if err != nil {
		return err
	}

	if _, err = s.rooms.Get(ctx, req.RoomID); err != nil {
		return err
	}

	cacheKey := shared.BuildCacheKey(cacheLastViewed, user)
	if err = s.cache.Save(ctx, cacheKey, req.RoomID, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save last viewed room")

		return fmt.Errorf("failed to save last viewed room: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetLastViewed(ctx context.Context) (res dto.GetLastViewedResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetLastViewed")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userFromContext(ctx)
	if err != nil {
		return res, err
	}

	var roomID string

	cacheKey := shared.BuildCacheKey(cacheLastViewed, user)
	if err := s.cache.Get(ctx, cacheKey, &roomID); err != nil || roomID == constant.Empty {
		return res, nil
	}

	room, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		// The room may have been deleted since it was viewed.
		var fail *failure.Failure
		if errors.As(err, &fail) {
			return res, nil
		}

		return res, err
	}

	res.Room = &room

	return res, nil
}

// favoriteIDs loads the stored favorite set. A missing or unreadable entry
// is treated as an empty set.
func (s *serviceImpl) favoriteIDs(ctx context.Context, user string) []string {
	var ids []string

	cacheKey := shared.BuildCacheKey(cacheFavoriteRooms, user)
	if err := s.cache.Get(ctx, cacheKey, &ids); err != nil {
		return []string{}
	}

	if ids == nil {
		return []string{}
	}

	return ids
}

func (s *serviceImpl) resolveFavorites(ctx context.Context, ids []string) (res dto.GetFavoritesResponse, err error) {
	rooms, err := s.rooms.GetByIDs(ctx, ids)
	if err != nil {
		return res, err
	}

	res.RoomIDs = ids
	res.Rooms = rooms

	return res, nil
}

func (s *serviceImpl) userFromContext(ctx context.Context) (string, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return constant.Empty, failure.Unauthorized("missing user identity") // nolint:wrapcheck
	}

	return user, nil
}
