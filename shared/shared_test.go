package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roombook/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 10, limit: 0, expected: 1},
		{name: "exact division", total: 20, limit: 10, expected: 2},
		{name: "rounds up", total: 16, limit: 6, expected: 3},
		{name: "single page", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestConvertStringToBool(t *testing.T) {
	assert.Nil(t, ConvertStringToBool(""))
	assert.Nil(t, ConvertStringToBool("not-a-bool"))

	result := ConvertStringToBool("true")
	assert.NotNil(t, result)
	assert.True(t, *result)

	result = ConvertStringToBool("false")
	assert.NotNil(t, result)
	assert.False(t, *result)
}

func TestConvertStringToInt(t *testing.T) {
	value, err := ConvertStringToInt("42")
	assert.NoError(t, err)
	assert.Equal(t, 42, value)

	_, err = ConvertStringToInt("four")
	assert.Error(t, err)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room", BuildCacheKey("room"))
	assert.Equal(t, "room:abc", BuildCacheKey("room", "abc"))
	assert.Equal(t, "limiter:ip:agent", BuildCacheKey("limiter", "ip", "agent"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 6, SortBy: "created_at", SortDir: "DESC"}
	filter := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "capacity", Value: 4, Operator: dto.FilterOperatorGreaterEq, Table: "room"},
		},
	}

	key := BuildCacheKeyWithQuery("room:list", params, filter)
	assert.Contains(t, key, "room:list:")

	// Identical inputs derive the same key.
	assert.Equal(t, key, BuildCacheKeyWithQuery("room:list", params, filter))

	// Different page derives a different key.
	params.Page = 2
	assert.NotEqual(t, key, BuildCacheKeyWithQuery("room:list", params, filter))
}

func TestTransformFields(t *testing.T) {
	type patch struct {
		Name     string `db:"name"`
		Capacity int    `db:"capacity"`
		Ignored  string
	}

	fields := TransformFields(patch{Name: "Board Room"}, "admin@example.com")

	assert.Equal(t, "Board Room", fields["name"])
	assert.NotContains(t, fields, "capacity")
	assert.Equal(t, "admin@example.com", fields["modified_by"])
	assert.Contains(t, fields, "modified_at")
}

func TestFilterByID(t *testing.T) {
	group := FilterByID("abc-123", "id", "room")

	assert.Len(t, group.Filters, 1)

	filter, ok := group.Filters[0].(dto.Filter)
	assert.True(t, ok)
	assert.Equal(t, "id", filter.Field)
	assert.Equal(t, "abc-123", filter.Value)
	assert.Equal(t, dto.FilterOperatorEq, filter.Operator)
	assert.Equal(t, "room", filter.Table)
}
