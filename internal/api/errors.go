package api

import (
	"errors"
	"fmt"
)

// Fallback messages shown when the server response carries no usable
// message body. They match the messages the web client displays.
const (
	MsgConnectionError = "Erro de conexão."
	MsgMissingFields   = "Por favor, preencha todos os campos."
)

// ValidationError is raised locally, before any request is sent, when
// a required field is missing or malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UnauthorizedError covers a missing or invalid token as well as
// server-side ownership rejections.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

// NotFoundError is returned for a 404 on a specific resource. An empty
// collection result is not an error.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NetworkError wraps a transport failure: unreachable host, timeout,
// or an unparsable response body.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is any other non-2xx response, carrying the
// server-provided message when one could be decoded.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsUnauthorized(err error) bool {
	var ue *UnauthorizedError
	return errors.As(err, &ue)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// UserMessage extracts the message to surface inline for a failed
// action, falling back to the given generic message. Transport
// failures always map to the connection-error message.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if IsNetwork(err) {
		return MsgConnectionError
	}
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}
	var ue *UnauthorizedError
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	var nfe *NotFoundError
	if errors.As(err, &nfe) && nfe.Message != "" {
		return nfe.Message
	}
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
