package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeMethodNotAllowed   ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCanceled           ErrorCode = "COMMON_012"
)

// Aliases used by call sites that predate the prefixed names.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")

	CodeMoleculeInvalidSMILES = ErrCodeMoleculeInvalidSMILES
	CodeFragmentNotFound      = ErrCodeFragmentNotFound
)

// Molecule Module Error Codes
const (
	ErrCodeMoleculeInvalidSMILES    ErrorCode = "MOL_001"
	ErrCodeMoleculeSanitizeFailed   ErrorCode = "MOL_006"
	ErrCodeMoleculeConversionFailed ErrorCode = "MOL_011"
	ErrCodePropertyCalculation      ErrorCode = "MOL_013"
	ErrCodeSubstitutionFailed       ErrorCode = "MOL_016"
)

// Fragment Module Error Codes
const (
	ErrCodeFragmentNotFound ErrorCode = "FRAG_001"
	ErrCodeFragmentInvalid  ErrorCode = "FRAG_002"
)

// Enumeration Module Error Codes
const (
	ErrCodeEnumerationLimitInvalid ErrorCode = "ENUM_001"
	ErrCodeEnumerationFailed       ErrorCode = "ENUM_002"
)

// ErrorCodeHTTPStatus maps error codes to the HTTP status returned by the API.
//
// FRAG_001 is a not-found condition inside the fragment table, but at the API
// boundary an unknown tag is a malformed request and is answered with 400.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeMethodNotAllowed:   http.StatusMethodNotAllowed,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCanceled:           499,

	ErrCodeMoleculeInvalidSMILES:    http.StatusBadRequest,
	ErrCodeMoleculeSanitizeFailed:   http.StatusUnprocessableEntity,
	ErrCodeMoleculeConversionFailed: http.StatusInternalServerError,
	ErrCodePropertyCalculation:      http.StatusInternalServerError,
	ErrCodeSubstitutionFailed:       http.StatusInternalServerError,

	ErrCodeFragmentNotFound: http.StatusBadRequest,
	ErrCodeFragmentInvalid:  http.StatusInternalServerError,

	ErrCodeEnumerationLimitInvalid: http.StatusBadRequest,
	ErrCodeEnumerationFailed:       http.StatusInternalServerError,
}

// ErrorCodeMessage holds the default message for every known code.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "Not Found",
	ErrCodeMethodNotAllowed:   "Method Not Allowed",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCanceled:           "request canceled",

	ErrCodeMoleculeInvalidSMILES:    "Bad SMILES",
	ErrCodeMoleculeSanitizeFailed:   "molecule failed sanitization",
	ErrCodeMoleculeConversionFailed: "molecule conversion failed",
	ErrCodePropertyCalculation:      "descriptor calculation failed",
	ErrCodeSubstitutionFailed:       "substitution failed",

	ErrCodeFragmentNotFound: "unknown fragment tag",
	ErrCodeFragmentInvalid:  "invalid fragment definition",

	ErrCodeEnumerationLimitInvalid: "invalid enumeration limit",
	ErrCodeEnumerationFailed:       "enumeration failed",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
