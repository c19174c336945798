package author

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInput_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		bio := "Wrote books."
		country := "United Kingdom"
		in := CreateInput{Name: "George Orwell", Bio: &bio, Country: &country}
		assert.NoError(t, in.Validate())
	})

	tests := []struct {
		name    string
		input   CreateInput
		message string
	}{
		{
			name:    "missing name",
			input:   CreateInput{},
			message: "Missing required field: author name",
		},
		{
			name:    "blank name",
			input:   CreateInput{Name: "   "},
			message: "Author name cannot be empty",
		},
		{
			name:    "name too short",
			input:   CreateInput{Name: "A"},
			message: "Author name must be at least 2 character(s) long",
		},
		{
			name:    "name too long",
			input:   CreateInput{Name: strings.Repeat("x", 201)},
			message: "Author name must be 200 characters or less",
		},
		{
			name:    "numeric name",
			input:   CreateInput{Name: "12345"},
			message: "Author name cannot contain only numbers",
		},
		{
			name:    "bio too long",
			input:   CreateInput{Name: "George Orwell", Bio: strPtr(strings.Repeat("x", 2001))},
			message: "Biography must be 2000 characters or less",
		},
		{
			name:    "country too long",
			input:   CreateInput{Name: "George Orwell", Country: strPtr(strings.Repeat("x", 101))},
			message: "Country name must be 100 characters or less",
		},
		{
			name:    "numeric country",
			input:   CreateInput{Name: "George Orwell", Country: strPtr("123")},
			message: "Country name cannot contain only numbers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestUpdateInput_Validate(t *testing.T) {
	t.Run("empty input is valid", func(t *testing.T) {
		assert.NoError(t, UpdateInput{}.Validate())
	})

	t.Run("absent name not required", func(t *testing.T) {
		assert.NoError(t, UpdateInput{Country: strPtr("France")}.Validate())
	})

	t.Run("supplied blank name fails", func(t *testing.T) {
		err := UpdateInput{Name: strPtr(" ")}.Validate()
		require.Error(t, err)
		assert.Equal(t, "Author name cannot be empty", err.Error())
	})
}

func strPtr(s string) *string { return &s }
