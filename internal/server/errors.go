// Package server provides the HTTP JSON API for the climate careers service.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrAPIKey indicates a missing or rejected LLM API key
type ErrAPIKey struct {
	Cause error
}

func (e *ErrAPIKey) Error() string {
	return "invalid API key; check the GEMINI_API_KEY environment variable"
}

func (e *ErrAPIKey) Unwrap() error { return e.Cause }

// ErrQuota indicates the LLM API quota is exhausted
type ErrQuota struct {
	Cause error
}

func (e *ErrQuota) Error() string {
	return "API quota exceeded; try again later"
}

func (e *ErrQuota) Unwrap() error { return e.Cause }

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validation *ErrValidation
	var apiKey *ErrAPIKey
	var quota *ErrQuota
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &apiKey):
		return http.StatusUnauthorized
	case errors.As(err, &quota):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// classifyLLMError maps upstream model-API failures onto the service error
// types so quota and credential problems surface with the right status.
func classifyLLMError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &ErrAPIKey{Cause: err}
		case http.StatusTooManyRequests:
			return &ErrQuota{Cause: err}
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "api key") {
		return &ErrAPIKey{Cause: err}
	}
	if strings.Contains(msg, "quota") {
		return &ErrQuota{Cause: err}
	}
	return err
}
