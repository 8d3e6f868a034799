package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	UserNotFound failure.ErrorCode = "UserNotFound"

	// Сделки
	DealNotFound        failure.ErrorCode = "DealNotFound"
	DealAlreadyTaken    failure.ErrorCode = "DealAlreadyTaken"    // Покупатель уже назначен
	DealWrongStatus     failure.ErrorCode = "DealWrongStatus"     // Переход не из того статуса
	DealIDExhausted     failure.ErrorCode = "DealIDExhausted"     // Не нашли свободный ID за отведённые попытки
	DealDraftIncomplete failure.ErrorCode = "DealDraftIncomplete" // В черновике не хватает полей
	NotDealSeller       failure.ErrorCode = "NotDealSeller"

	// Реквизиты
	CardNotFound      failure.ErrorCode = "CardNotFound"
	InvalidWallet     failure.ErrorCode = "InvalidWallet"     // Не 48 символов [A-Za-z0-9_-]
	InvalidCardNumber failure.ErrorCode = "InvalidCardNumber" // Не 16 цифр
	InvalidAmount     failure.ErrorCode = "InvalidAmount"     // Не число или <= 0
	InvalidItems      failure.ErrorCode = "InvalidItems"      // Грамматика зависит от типа сделки
	InvalidDealType   failure.ErrorCode = "InvalidDealType"
	InvalidFeePercent failure.ErrorCode = "InvalidFeePercent"

	// Сессии мастера создания
	SessionNotFound  failure.ErrorCode = "SessionNotFound"
	SessionWrongStep failure.ErrorCode = "SessionWrongStep" // Событие не разрешено на текущем шаге
)
