package v1

import (
	ez_uuid "github.com/finansmart/backend/internal/uuid"
	"golang.org/x/exp/slices"
)

// defaultLimit is the number of resources returned by list endpoints
// unless the limit parameter is set.
const defaultLimit = 50

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// queryLimit returns the limit requested in the query or the default.
func queryLimit(setFields []string, requested int) int {
	if slices.Contains(setFields, "Limit") {
		return requested
	}
	return defaultLimit
}

// paginate returns the part of list selected by offset and limit. A
// negative limit returns everything after the offset.
func paginate[T any](list []T, offset uint, limit int) []T {
	if int(offset) >= len(list) {
		return []T{}
	}

	list = list[offset:]
	if limit >= 0 && limit < len(list) {
		list = list[:limit]
	}

	return list
}
