package store

import (
	"testing"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name       string
		streamName string
		expected   string
	}{
		{"simple stream", "account-123", "account"},
		{"compound ID", "account-123+456", "account"},
		{"category only", "account", "account"},
		{"multi-dash", "account-prefix-123", "account"},
		{"leading dash", "-123", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Category(tt.streamName)
			if result != tt.expected {
				t.Errorf("Category(%s) = %s, expected %s", tt.streamName, result, tt.expected)
			}
		})
	}
}

func TestStreamName(t *testing.T) {
	tests := []struct {
		name     string
		category string
		id       string
		expected string
	}{
		{"with ID", "account", "123", "account-123"},
		{"compound ID", "account", "123+456", "account-123+456"},
		{"category only", "account", "", "account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StreamName(tt.category, tt.id)
			if result != tt.expected {
				t.Errorf("StreamName(%s, %s) = %s, expected %s", tt.category, tt.id, result, tt.expected)
			}
			if Category(result) != tt.category {
				t.Errorf("Category(%s) = %s, expected %s", result, Category(result), tt.category)
			}
		})
	}
}
