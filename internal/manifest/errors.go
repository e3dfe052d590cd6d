package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrMissingFields indicates required system config fields are unset.
	ErrMissingFields = errors.New("missing required system config fields")

	// ErrUnsupportedProvider indicates no cloud properties mapping exists for a provider.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrInvariantViolation indicates a composed document broke the core topology.
	ErrInvariantViolation = errors.New("manifest invariant violated")
)

// MissingFieldsError lists every required system config field that is unset.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("these system config fields must be set: %s", strings.Join(e.Fields, ", "))
}

// Is reports whether target is ErrMissingFields.
func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}

// UnsupportedProviderError names a provider without a cloud properties mapping.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("%s %q (supported: %v)", ErrUnsupportedProvider, e.Provider, SupportedProviders())
}

// Is reports whether target is ErrUnsupportedProvider.
func (e *UnsupportedProviderError) Is(target error) bool {
	return target == ErrUnsupportedProvider
}

// CompositionError reports the pipeline step that failed.
type CompositionError struct {
	Step string
	Err  error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("compose manifest: %s: %v", e.Step, e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}
