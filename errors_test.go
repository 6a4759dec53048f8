package lingosnip

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Message: "language list must not be empty"}
	if !strings.Contains(err.Error(), "language list") {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if !IsConfiguration(err) {
		t.Error("IsConfiguration should match")
	}
	if !IsConfiguration(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsConfiguration should match through wrapping")
	}
}

func TestLanguageNotFoundError_Unwrap(t *testing.T) {
	cause := errors.New("no such file")
	err := &LanguageNotFoundError{Language: "fr-FR", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
	if !strings.Contains(err.Error(), "fr-FR") {
		t.Errorf("message should name the language: %s", err.Error())
	}
	if !IsLanguageNotFound(err) {
		t.Error("IsLanguageNotFound should match")
	}
}

func TestTranslationMissingError(t *testing.T) {
	err := &TranslationMissingError{Key: "a.b", Language: "en-US"}
	msg := err.Error()
	if !strings.Contains(msg, "a.b") || !strings.Contains(msg, "en-US") {
		t.Errorf("message should name key and language: %s", msg)
	}
	if !IsTranslationMissing(err) {
		t.Error("IsTranslationMissing should match")
	}
	if IsTranslationMissing(errors.New("other")) {
		t.Error("IsTranslationMissing should not match unrelated errors")
	}
}

func TestCacheError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &CacheError{Message: "writing entry", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestProviderError_Retryable(t *testing.T) {
	retryable := &ProviderError{Message: "rate limited", Retryable: true}
	if !IsRetryable(retryable) {
		t.Error("retryable provider error should be retryable")
	}

	fatal := &ProviderError{Message: "bad request", Retryable: false}
	if IsRetryable(fatal) {
		t.Error("non-retryable provider error should not be retryable")
	}

	if IsRetryable(nil) {
		t.Error("nil is not retryable")
	}
}
