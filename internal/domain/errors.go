package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 409}
}

func ErrInvalidAmount() *AppError {
	return &AppError{Code: "INVALID_AMOUNT", Message: "wager amount must be positive", Status: 400}
}

func ErrInsufficientFunds(remaining, requested int64) *AppError {
	return &AppError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: fmt.Sprintf("wallet has %d coins, wager requires %d", remaining, requested),
		Status:  400,
	}
}

func ErrGameLocked(gameID string) *AppError {
	return &AppError{Code: "GAME_LOCKED", Message: fmt.Sprintf("game %s is past its betting cutoff", gameID), Status: 409}
}

func ErrCannotCancel(wagerID string) *AppError {
	return &AppError{Code: "CANNOT_CANCEL", Message: fmt.Sprintf("wager %s is not pending", wagerID), Status: 409}
}

func ErrTournamentInactive(id string) *AppError {
	return &AppError{Code: "TOURNAMENT_INACTIVE", Message: fmt.Sprintf("tournament %s is not active", id), Status: 409}
}

func ErrWalletNotFound(userID string) *AppError {
	return &AppError{Code: "WALLET_NOT_FOUND", Message: fmt.Sprintf("no wallet for user %s in the current tournament", userID), Status: 404}
}

func ErrInvalidStandingsData(walletID, reason string) *AppError {
	return &AppError{
		Code:    "INVALID_STANDINGS_DATA",
		Message: fmt.Sprintf("wallet %s has malformed standings data: %s", walletID, reason),
		Status:  422,
	}
}

func ErrOperationNotSupported(msg string) *AppError {
	return &AppError{Code: "OPERATION_NOT_SUPPORTED", Message: msg, Status: 422}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
