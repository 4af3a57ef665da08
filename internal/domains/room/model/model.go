package model

import (
	"roombook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldName      = "name"
	FieldLocation  = "location"
	FieldCapacity  = "capacity"
	FieldAmenities = "amenities"
	FieldImage     = "image"
	FieldActive    = "active"
)

type Room struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Location  string         `db:"location"`
	Capacity  int            `db:"capacity"`
	Amenities pq.StringArray `db:"amenities"`
	Image     string         `db:"image"`
	Active    bool           `db:"active"`
	model.Metadata
}
