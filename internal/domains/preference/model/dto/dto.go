package dto

import (
	roomDto "roombook/internal/domains/room/model/dto"
)

type ToggleFavoriteRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

type GetFavoritesResponse struct {
	RoomIDs []string               `json:"room_ids"`
	Rooms   []roomDto.RoomResponse `json:"rooms"`
}

type SetThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

type GetThemeResponse struct {
	Theme string `json:"theme"`
}

type SetLastViewedRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

type GetLastViewedResponse struct {
	Room *roomDto.RoomResponse `json:"room,omitempty"`
}
