package preference

import (
	"net/http"
	"roombook/infras/otel"
	"roombook/internal/domains/preference/model/dto"
	"roombook/internal/domains/preference/service"
	"roombook/shared/constant"
	"roombook/shared/validator"
	"roombook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Preference
	otel    otel.Otel
}

func New(service service.Preference, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/preferences", func(routerGroup chi.Router) {
		routerGroup.Get("/favorites", handler.GetFavorites)
		routerGroup.Post("/favorites", handler.ToggleFavorite)
		routerGroup.Get("/theme", handler.GetTheme)
		routerGroup.Put("/theme", handler.SetTheme)
		routerGroup.Get("/last-viewed", handler.GetLastViewed)
		routerGroup.Put("/last-viewed", handler.SetLastViewed)
	})
}

// ToggleFavorite toggles a room in the user's favorites.
// @Summary Toggle a favorite room
// @Description Add the room to the user's favorites, or remove it when already present.
// @Tags Preference
// @Accept json
// @Produce json
// @Param request body dto.ToggleFavoriteRequest true "Toggle Favorite Request"
// @Success 200 {object} dto.GetFavoritesResponse "Updated favorites"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/preferences/favorites [post]
// @Security BearerAuth
func (handler *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleFavorite")
	defer scope.End()

	req := dto.ToggleFavoriteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.ToggleFavorite(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle favorite")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Favorite toggled successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetFavorites retrieves the user's favorite rooms.
// @Summary Get favorite rooms
// @Description Retrieve the authenticated user's favorite rooms.
// @Tags Preference
// @Produce json
// @Success 200 {object} dto.GetFavoritesResponse "Favorite rooms"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/preferences/favorites [get]
// @Security BearerAuth
func (handler *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFavorites")
	defer scope.End()

	res, err := handler.service.GetFavorites(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get favorites")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Favorites retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// SetTheme stores the user's theme preference.
// @Summary Set theme
// @Description Store the authenticated user's theme preference.
// @Tags Preference
// @Accept json
// @Produce json
// @Param request body dto.SetThemeRequest true "Set Theme Request"
// @Success 200 {object} response.Message "Theme saved successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/preferences/theme [put]
// @Security BearerAuth
func (handler *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetTheme")
	defer scope.End()

	req := dto.SetThemeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetTheme(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set theme")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Theme saved successfully")

	response.WithMessage(w, http.StatusOK, "Theme saved successfully")
}

// GetTheme retrieves the user's theme preference.
// @Summary Get theme
// @Description Retrieve the authenticated user's theme preference.
// @Tags Preference
// @Produce json
// @Success 200 {object} dto.GetThemeResponse "Theme preference"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/preferences/theme [get]
// @Security BearerAuth
func (handler *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTheme")
	defer scope.End()

	res, err := handler.service.GetTheme(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get theme")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Theme retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// SetLastViewed stores the room the user viewed most recently.
// @Summary Set last viewed room
// @Description Store the room the authenticated user viewed most recently.
// @Tags Preference
// @Accept json
// @Produce json
// @Param request body dto.SetLastViewedRequest true "Set Last Viewed Request"
// @Success 200 {object} response.Message "Last viewed room saved successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/preferences/last-viewed [put]
// @Security BearerAuth
func (handler *Handler) SetLastViewed(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetLastViewed")
	defer scope.End()

	req := dto.SetLastViewedRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetLastViewed(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set last viewed room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Last viewed room saved successfully")

	response.WithMessage(w, http.StatusOK, "Last viewed room saved successfully")
}

// GetLastViewed retrieves the room the user viewed most recently.
// @Summary Get last viewed room
// @Description Retrieve the room the authenticated user viewed most recently.
// @Tags Preference
// @Produce json
// @Success 200 {object} dto.GetLastViewedResponse "Last viewed room"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/preferences/last-viewed [get]
// @Security BearerAuth
func (handler *Handler) GetLastViewed(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLastViewed")
	defer scope.End()

	res, err := handler.service.GetLastViewed(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get last viewed room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Last viewed room retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}
