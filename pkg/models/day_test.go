package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Day
		wantErr  bool
	}{
		{name: "canonical form", input: "Monday", expected: Monday},
		{name: "upper case", input: "FRIDAY", expected: Friday},
		{name: "lower case", input: "sunday", expected: Sunday},
		{name: "mixed case", input: "wEdNesDay", expected: Wednesday},
		{name: "unknown day", input: "Funday", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := DayFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, day)
		})
	}
}

func TestDayOrder(t *testing.T) {
	assert.Equal(t, 1, Monday.Order())
	assert.Equal(t, 7, Sunday.Order())
	assert.True(t, Tuesday.Order() < Saturday.Order())

	// Zero marks an invalid value.
	assert.Equal(t, 0, Day("Someday").Order())
	assert.False(t, Day("Someday").Valid())
	assert.True(t, Thursday.Valid())
}
