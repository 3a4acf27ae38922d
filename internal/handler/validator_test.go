package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	Username string `json:"username" validate:"omitempty,handle"`
	Email    string `form:"email" validate:"omitempty,email"`
	Content  string `json:"content" validate:"notblank,max=5"`
}

func TestValidator_Handle(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
	}{
		{"alice", true},
		{"alice_01.b", true},
		{"", true},
		{"alice smith", false},
		{"alice/../x", false},
		{"ali$", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			err := GetValidator().ValidateStruct(&probe{Username: tt.username, Content: "ok"})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, FormatValidationError(err), "username")
			}
		})
	}
}

func TestValidator_NotBlank(t *testing.T) {
	err := GetValidator().ValidateStruct(&probe{Content: "   "})
	require.Error(t, err)
	assert.Equal(t, "This field is required", FormatValidationError(err)["content"])
}

func TestFormatValidationError(t *testing.T) {
	t.Run("field names come from tags", func(t *testing.T) {
		err := GetValidator().ValidateStruct(&probe{Email: "nope", Content: "too long"})
		require.Error(t, err)

		fields := FormatValidationError(err)
		assert.Equal(t, "Invalid email format", fields["email"])
		assert.Equal(t, "Must be at most 5 characters", fields["content"])
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, FormatValidationError(nil))
	})

	t.Run("not a validation error", func(t *testing.T) {
		fields := FormatValidationError(errors.New("boom"))
		assert.Equal(t, "Invalid request format", fields["error"])
	})
}

func TestGetValidator_Singleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
