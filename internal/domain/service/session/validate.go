package session

import (
	"regexp"
	"strconv"
	"strings"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/pkg/errcodes"
)

const channelLinkPrefix = "https://t.me/"

var walletPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{48}$`)

// ValidateWallet проверяет формат TON-кошелька: ровно 48 символов
// из [A-Za-z0-9_-].
func ValidateWallet(wallet string) error {
	if !walletPattern.MatchString(wallet) {
		return domain.NewError(errcodes.InvalidWallet, "wallet must be 48 characters of [A-Za-z0-9_-]")
	}
	return nil
}

// NormalizeCardNumber убирает пробелы и проверяет, что осталось
// ровно 16 цифр.
func NormalizeCardNumber(raw string) (string, error) {
	number := strings.ReplaceAll(raw, " ", "")
	if len(number) != 16 {
		return "", domain.NewError(errcodes.InvalidCardNumber, "card number must be 16 digits")
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return "", domain.NewError(errcodes.InvalidCardNumber, "card number must be 16 digits")
		}
	}
	return number, nil
}

// ParseAmount разбирает сумму сделки из свободного текста.
func ParseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InvalidAmount, "amount is not a number")
	}
	if amount <= 0 {
		return 0, domain.NewError(errcodes.InvalidAmount, "amount must be positive")
	}
	return amount, nil
}

// ParseItems разбирает позиции сделки. Грамматика зависит от типа:
// подарки — по строке на ссылку, канал — одна ссылка t.me,
// юзернейм — один токен с @, остальное — сырой текст.
func ParseItems(dealType entity.DealType, text string) ([]string, error) {
	switch dealType {
	case entity.DealTypeGift:
		var items []string
		for _, line := range strings.Split(text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				items = append(items, line)
			}
		}
		if len(items) == 0 {
			return nil, domain.NewError(errcodes.InvalidItems, "at least one gift link is required")
		}
		return items, nil

	case entity.DealTypeChannel:
		link := strings.TrimSpace(text)
		if strings.ContainsRune(link, '\n') || !strings.HasPrefix(link, channelLinkPrefix) {
			return nil, domain.NewError(errcodes.InvalidItems, "channel link must start with "+channelLinkPrefix)
		}
		return []string{link}, nil

	case entity.DealTypeUsername:
		username := strings.TrimSpace(text)
		if strings.ContainsAny(username, " \n") || !strings.HasPrefix(username, "@") {
			return nil, domain.NewError(errcodes.InvalidItems, "username must be a single token starting with @")
		}
		return []string{username}, nil

	default:
		item := strings.TrimSpace(text)
		if item == "" {
			return nil, domain.NewError(errcodes.InvalidItems, "description must not be empty")
		}
		return []string{item}, nil
	}
}
