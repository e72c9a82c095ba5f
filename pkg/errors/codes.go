package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
// Codes follow the "<MODULE>_<nnn>" convention so that logging and metrics
// can group failures by engine module via ModuleForCode.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes
const (
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeInvalidParam   ErrorCode = "COMMON_002"
	ErrCodeValidation     ErrorCode = "COMMON_003"
	ErrCodeSerialization  ErrorCode = "COMMON_004"
	ErrCodeNotImplemented ErrorCode = "COMMON_005"
	ErrCodeUnknown        ErrorCode = "COMMON_099"

	// CodeOK is the sentinel returned by GetCode for nil errors.
	CodeOK ErrorCode = "OK"
)

// Factor mining error codes.
//
// Note that a missing section or pattern is NOT an error: the miner resolves
// extraction gaps with category defaults.  Only a completely empty or
// unusable narrative is reported.
const (
	ErrCodeEmptyNarrative  ErrorCode = "MINE_001"
	ErrCodeUnparsableText  ErrorCode = "MINE_002"
	ErrCodeFactorInvalid   ErrorCode = "MINE_003"
	ErrCodeCategoryUnknown ErrorCode = "MINE_004"
	ErrCodeHorizonUnknown  ErrorCode = "MINE_005"
)

// Framework model error codes (operators, integrator, numerics).
const (
	ErrCodeOperatorFailed    ErrorCode = "MODEL_001"
	ErrCodeNumericDegeneracy ErrorCode = "MODEL_002"
	ErrCodeMatrixDimension   ErrorCode = "MODEL_003"
	ErrCodeIterationDiverged ErrorCode = "MODEL_004"
	ErrCodeExtendedInputs    ErrorCode = "MODEL_005"
)

// Analysis pipeline error codes.
const (
	ErrCodeAnalysisInput      ErrorCode = "ANALYSIS_001"
	ErrCodeAnalysisFailed     ErrorCode = "ANALYSIS_002"
	ErrCodeSimulationFailed   ErrorCode = "ANALYSIS_003"
	ErrCodeOptimizationFailed ErrorCode = "ANALYSIS_004"
	ErrCodeCalibrationInvalid ErrorCode = "ANALYSIS_005"
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:       "internal engine error",
	ErrCodeInvalidParam:   "invalid parameter",
	ErrCodeValidation:     "validation failed",
	ErrCodeSerialization:  "serialization failed",
	ErrCodeNotImplemented: "not implemented",
	ErrCodeUnknown:        "unknown error",

	ErrCodeEmptyNarrative:  "narrative text is empty or whitespace",
	ErrCodeUnparsableText:  "narrative text could not be parsed",
	ErrCodeFactorInvalid:   "extracted factor failed validation",
	ErrCodeCategoryUnknown: "unknown factor category",
	ErrCodeHorizonUnknown:  "unknown time horizon",

	ErrCodeOperatorFailed:    "framework operator failed",
	ErrCodeNumericDegeneracy: "numeric degeneracy encountered",
	ErrCodeMatrixDimension:   "matrix dimensions do not match",
	ErrCodeIterationDiverged: "power iteration did not converge",
	ErrCodeExtendedInputs:    "extended framework inputs invalid",

	ErrCodeAnalysisInput:      "analysis input unusable",
	ErrCodeAnalysisFailed:     "strategic analysis failed",
	ErrCodeSimulationFailed:   "Monte Carlo simulation failed",
	ErrCodeOptimizationFailed: "strategy optimization failed",
	ErrCodeCalibrationInvalid: "engine calibration invalid",
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
