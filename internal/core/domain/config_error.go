package domain

import "fmt"

// ConfigErrorCode classifies an ISG configuration error.
type ConfigErrorCode string

const (
	// CodeInvalidTTL reports a ttlSeconds that is not a positive integer.
	CodeInvalidTTL ConfigErrorCode = "INVALID_TTL"
	// CodeTTLTooLarge reports a ttlSeconds above one year without a maxAgeCapDays.
	CodeTTLTooLarge ConfigErrorCode = "TTL_TOO_LARGE"
	// CodeInvalidMaxAgeCap reports a maxAgeCapDays that is not a positive integer.
	CodeInvalidMaxAgeCap ConfigErrorCode = "INVALID_MAX_AGE_CAP"
	// CodeMaxAgeCapTooLarge reports a maxAgeCapDays above MaxAgeCapDaysLimit.
	CodeMaxAgeCapTooLarge ConfigErrorCode = "MAX_AGE_CAP_TOO_LARGE"
	// CodeInvalidAgingRule reports an aging entry that is null or not an object.
	CodeInvalidAgingRule ConfigErrorCode = "INVALID_AGING_RULE"
	// CodeMissingAgingField reports an aging entry without untilDays or ttlSeconds.
	CodeMissingAgingField ConfigErrorCode = "MISSING_AGING_FIELD"
	// CodeInvalidAgingValue reports an aging field that is not a positive integer.
	CodeInvalidAgingValue ConfigErrorCode = "INVALID_AGING_VALUE"
	// CodeAgingTTLTooLarge reports an aging ttlSeconds above AgingTTLSecondsLimit.
	CodeAgingTTLTooLarge ConfigErrorCode = "AGING_TTL_TOO_LARGE"
	// CodeUnsortedAgingRules reports aging rules not in ascending untilDays order.
	CodeUnsortedAgingRules ConfigErrorCode = "UNSORTED_AGING_RULES"
	// CodeDuplicateAgingRule reports two aging rules with the same untilDays.
	CodeDuplicateAgingRule ConfigErrorCode = "DUPLICATE_AGING_RULE"
	// CodeAgingExceedsCap reports an aging rule whose untilDays is beyond maxAgeCapDays.
	CodeAgingExceedsCap ConfigErrorCode = "AGING_RULE_EXCEEDS_CAP"
)

// ConfigError is a structured ISG configuration error.
type ConfigError struct {
	Code    ConfigErrorCode
	Field   string
	Value   any
	Message string
}

// Error implements error.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s (%s = %v)", e.Code, e.Message, e.Field, e.Value)
}

// Unwrap returns ErrInvalidISGConfig so callers can match any configuration error with errors.Is.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidISGConfig
}

// NewConfigError builds a ConfigError.
func NewConfigError(code ConfigErrorCode, field string, value any, message string) *ConfigError {
	return &ConfigError{Code: code, Field: field, Value: value, Message: message}
}
