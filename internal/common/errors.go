package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUpstream     = errors.New("upstream llm error")
	ErrDatabase     = errors.New("database error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// MissingFieldError reports a required key absent from the input payload.
// PageIndex and WordIndex are -1 when the field is not below that level.
type MissingFieldError struct {
	Field     string
	DocIndex  int
	PageIndex int
	WordIndex int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q at %s", e.Field, e.Location())
}

// Location renders the JSON path of the offending object, e.g. documents[0].content[2].
func (e *MissingFieldError) Location() string {
	var b strings.Builder
	fmt.Fprintf(&b, "documents[%d]", e.DocIndex)
	if e.PageIndex >= 0 {
		fmt.Fprintf(&b, ".content[%d]", e.PageIndex)
	}
	if e.WordIndex >= 0 {
		fmt.Fprintf(&b, ".words[%d]", e.WordIndex)
	}
	return b.String()
}

func (e *MissingFieldError) Unwrap() error { return ErrInvalidInput }

// LLMInvocationError wraps any failure of an LLM call: transport, auth, quota,
// malformed or empty reply.
type LLMInvocationError struct {
	Stage    string // "summary" | "metadata"
	Provider string
	Cause    error
}

func (e *LLMInvocationError) Error() string {
	return fmt.Sprintf("llm %s call failed (%s): %v", e.Stage, e.Provider, e.Cause)
}

func (e *LLMInvocationError) Unwrap() error { return e.Cause }

func (e *LLMInvocationError) Is(target error) bool { return target == ErrUpstream }

// IsClientError reports whether err was caused by the caller's payload.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// GRPCStatus maps a pipeline error onto a gRPC status. Client errors become
// InvalidArgument; anything else is Internal.
func GRPCStatus(err error) error {
	if err == nil {
		return nil
	}
	if IsClientError(err) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// HTTPStatus is the HTTP counterpart of GRPCStatus.
func HTTPStatus(err error) int {
	if IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
