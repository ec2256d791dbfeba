package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Rating *int    `json:"rating" validate:"required,gte=1,lte=10"`
	Size   float64 `json:"size" validate:"gt=0"`
	Kind   string  `json:"kind" validate:"omitempty,oneof=a b"`
}

func intPtr(v int) *int { return &v }

func TestGetValidator_Singleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.NoError(t, ValidateStruct(&sample{Rating: intPtr(10), Size: 1}))
	assert.NoError(t, ValidateStruct(&sample{Rating: intPtr(1), Size: 0.5, Kind: "b"}))
}

func TestValidateStruct_Messages(t *testing.T) {
	tests := []struct {
		name  string
		input sample
		field string
		tag   string
		msg   string
	}{
		{"missing", sample{Size: 1}, "rating", "required", "rating is required"},
		{"too low", sample{Rating: intPtr(0), Size: 1}, "rating", "gte", "rating must be greater than or equal to 1"},
		{"too high", sample{Rating: intPtr(11), Size: 1}, "rating", "lte", "rating must be less than or equal to 10"},
		{"not positive", sample{Rating: intPtr(5)}, "size", "gt", "size must be greater than 0"},
		{"oneof", sample{Rating: intPtr(5), Size: 1, Kind: "c"}, "kind", "oneof", "kind must be one of: a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			require.Error(t, err)

			var reqErr *RequestValidationError
			require.True(t, errors.As(err, &reqErr))
			require.Len(t, reqErr.Fields, 1)
			assert.Equal(t, tt.field, reqErr.Fields[0].Field)
			assert.Equal(t, tt.tag, reqErr.Fields[0].Tag)
			assert.Equal(t, tt.msg, reqErr.Fields[0].Message)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestValidateStruct_MultipleFields(t *testing.T) {
	err := ValidateStruct(&sample{})
	require.Error(t, err)

	var reqErr *RequestValidationError
	require.ErrorAs(t, err, &reqErr)
	assert.Len(t, reqErr.Fields, 2)
	assert.Equal(t, "rating is required; size must be greater than 0", err.Error())
}
