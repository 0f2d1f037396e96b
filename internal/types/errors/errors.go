package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrDBInternal    = errors.New("database internal error")
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrValidation    = errors.New("validation failed")

	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionIsExpired = errors.New("session is expired")
	ErrNoAuth           = errors.New("session required")

	ErrBadID              = errors.New("bad id")
	ErrInvalidQuantity    = errors.New("quantity must be a positive number")
	ErrInvalidJSONPayload = errors.New("invalid JSON payload")
	ErrInvalidSort        = errors.New("unknown sort option")
	ErrInvalidPrice       = errors.New("invalid price range")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")

	ErrEmptyCart          = errors.New("cart is empty")
	ErrPhoneMismatch      = errors.New("phone number does not match our records")
	ErrInvalidPromoCode   = errors.New("promo code is not valid")
	ErrOfferNotApplicable = errors.New("order amount is below the offer minimum")

	ErrCartUnavailable = errors.New("cart is temporarily unavailable, please retry")

	ErrIndexing = errors.New("indexing error")
	ErrSearch   = errors.New("search error")

	ErrInvalidEvent = errors.New("invalid event")
)

// ValidationError ошибка незаполненных обязательных полей формы.
// errors.Is(err, ErrValidation) для нее возвращает true
type ValidationError struct {
	Fields []string
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

type ErrorServer struct {
	Message string `json:"message"`
}

func (e *ErrorServer) Error() string {
	return e.Message
}

/*
NewErrorServer
Функция имеет возможность принимать "nil ошибку"
при получении nil наша функция понимает, что нам
просто надо отдать саксесс клиенту
*/
func NewErrorServer(err error) ErrorServer {
	if err == nil {
		return ErrorServer{
			Message: "success",
		}
	}

	return ErrorServer{
		Message: err.Error(),
	}
}

func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}

// StatusFor подбирает HTTP статус для ошибок репозиториев и сервисов
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidSort),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrBadID),
		errors.Is(err, ErrInvalidJSONPayload):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoAuth),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrSessionIsExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPhoneMismatch):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidPromoCode):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrOfferNotApplicable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrCartUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
