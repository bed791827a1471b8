package model

import (
	"errors"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxMessageLength bounds the forwarded user message
const MaxMessageLength = 4000

var (
	ErrChatDisabled = errors.New("chat is not configured")
	ErrUpstream     = errors.New("completion service failed")
)

// ChatRequest - body of POST /v1/chat
type ChatRequest struct {
	Message string `json:"message"`
}

// Validate validates ChatRequest
func (r ChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message,
			validation.By(notBlank),
			validation.RuneLength(1, MaxMessageLength),
		),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// ChatResponse - content is "" when the model returned nothing
type ChatResponse struct {
	Content string `json:"content"`
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrChatDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrChatDisabled):
		return "CHAT_DISABLED"
	case errors.Is(err, ErrUpstream):
		return "UPSTREAM_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
