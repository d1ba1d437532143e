package store

import (
	"strings"
)

// CategoryFunc maps a stream name to the category it is indexed under.
type CategoryFunc func(streamName string) string

// Category extracts the category name from a stream name
// Examples:
//
//	Category("account-123") → "account"
//	Category("account-123+456") → "account"
//	Category("account") → "account"
func Category(streamName string) string {
	if idx := strings.IndexByte(streamName, '-'); idx >= 0 {
		return streamName[:idx]
	}
	return streamName
}

// StreamName joins a category and an identifier: StreamName("account", "123")
// is "account-123". An empty id yields the bare category.
func StreamName(category, id string) string {
	if id == "" {
		return category
	}
	return category + "-" + id
}
