package errors

import "net/http"

// ErrorCode is the machine-facing half of an *Error
// The numeric values go out on the wire; append new codes, never reorder
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	ErrorCodeConflict
	ErrorCodeUnauthorized
	ErrorCodeForbidden
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB

	// ErrorCodeDataFormat: a corpus source lacks a required column or holds unparsable rows
	ErrorCodeDataFormat
	// ErrorCodeInsufficientData: too few rows or classes to stratify and split
	ErrorCodeInsufficientData
	// ErrorCodeNotFitted: transform or predict before fit
	ErrorCodeNotFitted
	// ErrorCodeArtifactNotFound: nothing stored at the artifact location
	ErrorCodeArtifactNotFound
	// ErrorCodeArtifactCorrupt: stored bytes do not decode into an artifact
	ErrorCodeArtifactCorrupt
	// ErrorCodeUnknownClass: the class set lacks a label the caller depends on
	ErrorCodeUnknownClass
	// ErrorCodePayloadTooLarge: a request body went past its byte cap
	ErrorCodePayloadTooLarge
)

var codeNames = [...]string{
	ErrorCodeUnknown:          "unknown",
	ErrorCodePanic:            "panic",
	ErrorCodeUnavailable:      "unavailable",
	ErrorCodeTooManyRequests:  "too_many_requests",
	ErrorCodeConflict:         "conflict",
	ErrorCodeUnauthorized:     "unauthorized",
	ErrorCodeForbidden:        "forbidden",
	ErrorCodeInvalidArgument:  "invalid_argument",
	ErrorCodeValidation:       "validation",
	ErrorCodeJSON:             "json",
	ErrorCodeNotFound:         "not_found",
	ErrorCodeDuplicateKey:     "duplicate_key",
	ErrorCodeDB:               "db",
	ErrorCodeDataFormat:       "data_format",
	ErrorCodeInsufficientData: "insufficient_data",
	ErrorCodeNotFitted:        "not_fitted",
	ErrorCodeArtifactNotFound: "artifact_not_found",
	ErrorCodeArtifactCorrupt:  "artifact_corrupt",
	ErrorCodeUnknownClass:     "unknown_class",
	ErrorCodePayloadTooLarge:  "payload_too_large",
}

// String is the snake_case name used in logs
func (c ErrorCode) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

// codes absent here answer 500
var statusByCode = map[ErrorCode]int{
	ErrorCodeNotFound:         http.StatusNotFound,
	ErrorCodeInvalidArgument:  http.StatusUnprocessableEntity,
	ErrorCodeDataFormat:       http.StatusUnprocessableEntity,
	ErrorCodeInsufficientData: http.StatusUnprocessableEntity,
	ErrorCodeDuplicateKey:     http.StatusConflict,
	ErrorCodeConflict:         http.StatusConflict,
	ErrorCodeValidation:       http.StatusBadRequest,
	ErrorCodeJSON:             http.StatusBadRequest,
	ErrorCodeUnauthorized:     http.StatusUnauthorized,
	ErrorCodeForbidden:        http.StatusForbidden,
	ErrorCodeTooManyRequests:  http.StatusTooManyRequests,
	ErrorCodeUnavailable:      http.StatusServiceUnavailable,
	ErrorCodeArtifactNotFound: http.StatusServiceUnavailable,
	ErrorCodePayloadTooLarge:  http.StatusRequestEntityTooLarge,
}

// HTTPStatusCode maps a code onto the status a handler answers with
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// HTTPStatus is HTTPStatusCode(CodeOf(err))
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }
