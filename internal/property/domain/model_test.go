package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", " Villa ", " Villa "},
		{"int", 3, "3"},
		{"int8", int8(-2), "-2"},
		{"int16", int16(3), "3"},
		{"int32", int32(4), "4"},
		{"int64", int64(5), "5"},
		{"uint8", uint8(2), "2"},
		{"uint16", uint16(6), "6"},
		{"uint", uint(7), "7"},
		{"float whole", 3.0, "3"},
		{"float fraction", 2.5, "2.5"},
		{"bool", true, "true"},
		{"stringer", ts, ts.String()},
		{"slice", []string{"a"}, ""},
		{"map", map[string]any{"a": 1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}
