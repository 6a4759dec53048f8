package lingosnip

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates invalid input to the resolver or malformed
// configuration (for example an empty language list).
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// LanguageNotFoundError indicates the backing resource for a language is
// missing or unparseable.
type LanguageNotFoundError struct {
	Language string
	Cause    error
}

func (e *LanguageNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("language %q not found: %v", e.Language, e.Cause)
	}
	return fmt.Sprintf("language %q not found", e.Language)
}

func (e *LanguageNotFoundError) Unwrap() error {
	return e.Cause
}

// TranslationMissingError indicates a key is absent from a successfully
// loaded catalog. Only strict resolution produces it.
type TranslationMissingError struct {
	Key      string
	Language string
}

func (e *TranslationMissingError) Error() string {
	return fmt.Sprintf("translation %q missing for language %q", e.Key, e.Language)
}

// CacheError indicates a cache operation failure. The cache service absorbs
// these internally; they never reach resolver callers.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a machine-translation provider failure
// (API error, rate limit, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// IsLanguageNotFound reports whether err is a LanguageNotFoundError.
func IsLanguageNotFound(err error) bool {
	var target *LanguageNotFoundError
	return errors.As(err, &target)
}

// IsTranslationMissing reports whether err is a TranslationMissingError.
func IsTranslationMissing(err error) bool {
	var target *TranslationMissingError
	return errors.As(err, &target)
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}
