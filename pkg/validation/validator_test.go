package validation

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookPayload struct {
	Title           string `json:"title" binding:"required"`
	PublicationYear int    `json:"publication_year" binding:"required,bookyear"`
	Password        string `json:"password" binding:"omitempty,pwd"`
}

func validate(t *testing.T, v any) error {
	t.Helper()
	Init()
	engine := binding.Validator.Engine()
	type validator interface{ Struct(any) error }
	return engine.(validator).Struct(v)
}

func TestBookYearValidation(t *testing.T) {
	now := time.Now().Year()
	tests := []struct {
		name string
		year int
		ok   bool
	}{
		{"current year", now, true},
		{"old book", 1605, true},
		{"lower bound", 1000, true},
		{"below bound", 999, false},
		{"future", now + 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(t, bookPayload{Title: "x", PublicationYear: tt.year})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPwdAlias(t *testing.T) {
	err := validate(t, bookPayload{Title: "x", PublicationYear: 2000, Password: "short"})
	require.Error(t, err)

	err = validate(t, bookPayload{Title: "x", PublicationYear: 2000, Password: "longenough"})
	assert.NoError(t, err)
}

func TestToDetails(t *testing.T) {
	err := validate(t, bookPayload{PublicationYear: 999})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["title"])
	assert.Contains(t, details["publication_year"], "must be between 1000")
}

func TestToDetailsNil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
