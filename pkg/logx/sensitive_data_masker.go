package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	// JSON fields.
	regexp.MustCompile("(?s)(Authorization: Bearer ).+?(\r)"),
	regexp.MustCompile(`(?s)("card_number":\s?").+?(")`),
	regexp.MustCompile(`(?s)("cardNumber":\s?").+?(")`),
	regexp.MustCompile(`(?s)("payment_address":\s?").+?(")`),
	regexp.MustCompile(`(?s)("ton_wallet":\s?").+?(")`),
	regexp.MustCompile(`(?s)("first_name":\s?").+?(")`),
	regexp.MustCompile(`(?s)("username":\s?").+?(")`),
	// Голый номер карты (16 цифр, с пробелами или без).
	regexp.MustCompile(`()\b\d{4}[ ]?\d{4}[ ]?\d{4}[ ]?\d{4}\b()`),
}

type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}
