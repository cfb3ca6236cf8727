package messaging

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "5511999998888", NormalizeNumber("+55 (11) 99999-8888"))
	assert.Equal(t, "", NormalizeNumber("sem número"))
}

func TestValidateNumber(t *testing.T) {
	n, err := ValidateNumber("(11) 9999-8888")
	require.NoError(t, err)
	assert.Equal(t, "1199998888", n)

	_, err = ValidateNumber("1234-567")
	assert.ErrorIs(t, err, ErrInvalidContact)

	_, err = ValidateNumber("")
	assert.ErrorIs(t, err, ErrInvalidContact)
}

func TestExtractContactNumber(t *testing.T) {
	tests := []struct {
		name string
		doc  any
		want string
	}{
		{"object whatsapp", map[string]any{"whatsapp": "+55 11 99999-8888"}, "5511999998888"},
		{"key priority", map[string]any{"tel": "111", "wa": "222"}, "222"},
		{"skips null", map[string]any{"whatsapp": nil, "number": "333"}, "333"},
		{"blank stops lookup", map[string]any{"whatsapp": "", "tel": "5511999998888"}, ""},
		{"whitespace stops lookup", map[string]any{"whatsapp": "  ", "number": "333"}, ""},
		{"json number", map[string]any{"number": json.Number("5511988887777")}, "5511988887777"},
		{"float", map[string]any{"tel": 11988887777.0}, "11988887777"},
		{"array", []any{map[string]any{"wa": "444"}}, "444"},
		{"empty array", []any{}, ""},
		{"no keys", map[string]any{"email": "a@b.c"}, ""},
		{"scalar", "5511999998888", ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractContactNumber(tt.doc))
		})
	}
}

func TestContact(t *testing.T) {
	c := NewContact("+55 11 99999-8888")
	assert.Equal(t, "5511999998888", c.Get())

	c.Set("")
	assert.Equal(t, "", c.Get())
}
