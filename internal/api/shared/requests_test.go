package shared

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name        string
		requestBody string
		wantErr     bool
		errContains string
	}{
		{name: "valid json", requestBody: `{"name": "test", "age": 30}`},
		{name: "invalid json", requestBody: `{"name": "test", "age": 30,}`, wantErr: true, errContains: "invalid character"},
		{name: "empty body", requestBody: "", wantErr: true, errContains: "EOF"},
		{name: "unknown field", requestBody: `{"name": "test", "admin": true}`, wantErr: true, errContains: "unknown field"},
		{name: "trailing data", requestBody: `{"name": "a"}{"name": "b"}`, wantErr: true, errContains: "single JSON object"},
		{name: "wrong type", requestBody: `{"age": "thirty"}`, wantErr: true, errContains: "cannot unmarshal"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tc.requestBody))

			var target payload
			err := DecodeJSON(req, &target)

			if tc.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, payload{Name: "test", Age: 30}, target)
		})
	}
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return errors.New("not ok")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	type named struct {
		Name *string `validate:"required,max=4"`
	}
	short, long := "abc", "abcde"

	assert.NoError(t, ValidateRequest(&named{Name: &short}))

	err := ValidateRequest(&named{Name: &long})
	var verrs validator.ValidationErrors
	if assert.ErrorAs(t, err, &verrs) {
		assert.Equal(t, "max", verrs[0].Tag())
	}

	err = ValidateRequest(&named{})
	if assert.ErrorAs(t, err, &verrs) {
		assert.Equal(t, "required", verrs[0].Tag())
	}

	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.EqualError(t, ValidateRequest(selfValidating{}), "not ok")
}
