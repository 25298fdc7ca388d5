package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorConfiguration, "configuration"},
		{ErrorValidation, "validation"},
		{ErrorTransient, "transient"},
		{ErrorClass(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			result := test.class.String()
			if result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestIsConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"missing messenger", ErrMissingMessenger, true},
		{"invalid config", ErrInvalidConfig, true},
		{"missing config", ErrMissingConfig, true},
		{"unknown child kind", ErrUnknownChildKind, false},
		{"plain error", fmt.Errorf("something broke"), false},
		{"classified configuration", &ClassifiedError{Class: ErrorConfiguration, Err: fmt.Errorf("test")}, true},
		{"classified validation", &ClassifiedError{Class: ErrorValidation, Err: fmt.Errorf("test")}, false},
		{"wrapped missing messenger", fmt.Errorf("ctor: %w", ErrMissingMessenger), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsConfiguration(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"unknown child kind", ErrUnknownChildKind, true},
		{"invalid child name", ErrInvalidChildName, true},
		{"invalid payload", ErrInvalidPayload, true},
		{"missing messenger", ErrMissingMessenger, false},
		{"classified validation", &ClassifiedError{Class: ErrorValidation, Err: fmt.Errorf("test")}, true},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, false},
		{"wrapped unknown kind", fmt.Errorf("bridge: %w", ErrUnknownChildKind), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsValidation(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"no connection", ErrNoConnection, true},
		{"connection timeout", ErrConnectionTimeout, true},
		{"subscription failed", ErrSubscriptionFailed, true},
		{"publish failed", ErrPublishFailed, true},
		{"missing messenger", ErrMissingMessenger, false},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsTransient(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{"nil defaults to transient", nil, ErrorTransient},
		{"missing messenger", ErrMissingMessenger, ErrorConfiguration},
		{"unknown child kind", ErrUnknownChildKind, ErrorValidation},
		{"plain error defaults to transient", fmt.Errorf("who knows"), ErrorTransient},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.err); got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	base := fmt.Errorf("boom")
	err := Wrap(base, "Composer", "New", "metadata fold")

	if !errors.Is(err, base) {
		t.Error("wrapped error should match base via errors.Is")
	}
	if !strings.Contains(err.Error(), "Composer.New: metadata fold failed") {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if Wrap(nil, "Composer", "New", "noop") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestWrapClassified(t *testing.T) {
	base := fmt.Errorf("boom")

	cfg := WrapConfiguration(base, "Composer", "New", "messenger check")
	if !IsConfiguration(cfg) {
		t.Error("expected configuration classification")
	}
	if !errors.Is(cfg, base) {
		t.Error("classified error should unwrap to base")
	}

	val := WrapValidation(base, "Composer", "New", "child classification")
	if !IsValidation(val) {
		t.Error("expected validation classification")
	}

	tr := WrapTransient(base, "NATS", "Publish", "state change publish")
	if !IsTransient(tr) {
		t.Error("expected transient classification")
	}

	var ce *ClassifiedError
	if !errors.As(val, &ce) {
		t.Fatal("expected ClassifiedError in chain")
	}
	if ce.Component != "Composer" || ce.Operation != "New" {
		t.Errorf("unexpected context: %s.%s", ce.Component, ce.Operation)
	}

	if WrapValidation(nil, "Composer", "New", "noop") != nil {
		t.Error("wrapping nil should return nil")
	}
}
