package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// User-input failures. Callers can repair their submission and retry.
var (
	ErrIncompleteInput = errors.New("incomplete input")
	ErrUnknownItems    = errors.New("unknown items present")
	ErrTypeMismatch    = errors.New("rating type mismatch")
	ErrOutOfRange      = errors.New("rating out of range")
)

// Internal faults. These signal a broken taxonomy or engine, never bad user
// input, and must abort the computation.
var (
	ErrEmptyDimension        = errors.New("dimension has no scorable items")
	ErrMissingChronotypeItem = errors.New("missing chronotype item")
	ErrInternal              = errors.New("internal scoring fault")
)

// ValidationError is a user-input failure carrying the offending item codes,
// so callers match on kind instead of parsing messages.
type ValidationError struct {
	Kind   error
	Codes  []string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Detail)
	}
	return e.Kind.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Error constructors with context
func NewIncompleteInputError(missing []string) error {
	return &ValidationError{
		Kind:   ErrIncompleteInput,
		Codes:  missing,
		Detail: fmt.Sprintf("missing required items: %s", strings.Join(missing, ", ")),
	}
}

func NewUnknownItemsError(extra []string) error {
	return &ValidationError{
		Kind:   ErrUnknownItems,
		Codes:  extra,
		Detail: strings.Join(extra, ", "),
	}
}

func NewTypeMismatchError(code string, value any) error {
	return &ValidationError{
		Kind:   ErrTypeMismatch,
		Codes:  []string{code},
		Detail: fmt.Sprintf("item %q must be an integer, got %T", code, value),
	}
}

func NewOutOfRangeError(code string, value int) error {
	detail := fmt.Sprintf("value %d, expected %d..%d", value, likertMin, likertMax)
	codes := []string{}
	if code != "" {
		detail = fmt.Sprintf("item %q = %d, expected %d..%d", code, value, likertMin, likertMax)
		codes = []string{code}
	}
	return &ValidationError{Kind: ErrOutOfRange, Codes: codes, Detail: detail}
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrIncompleteInput) ||
		errors.Is(err, ErrUnknownItems) ||
		errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrOutOfRange)
}

func IsInternalFault(err error) bool {
	return errors.Is(err, ErrEmptyDimension) ||
		errors.Is(err, ErrMissingChronotypeItem) ||
		errors.Is(err, ErrInternal)
}

// AsValidationError extracts the structured form of a user-input failure.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
