package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tg_guarantor/pkg/logx"
)

func TestSensitiveDataMasker(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "card number json field",
			input:    `{"card_number": "1000200030004000","currency":"RUB"}`,
			expected: `{"card_number": "[MASKED]","currency":"RUB"}`,
		},
		{
			name:     "payment address json field",
			input:    `{"payment_address": "UQAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M"}`,
			expected: `{"payment_address": "[MASKED]"}`,
		},
		{
			name:     "bare card number with spaces",
			input:    "card 1000 2000 3000 4000 added",
			expected: "card [MASKED] added",
		},
		{
			name:     "deal id stays intact",
			input:    `{"deal_id":"A1B2C3D4"}`,
			expected: `{"deal_id":"A1B2C3D4"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq.Equal(tt.expected, string(masker.Mask([]byte(tt.input))))
		})
	}
}
