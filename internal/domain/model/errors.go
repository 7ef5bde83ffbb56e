package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is a machine-distinguishable error category.
type ErrorKind string

const (
	KindInvalidDimension        ErrorKind = "InvalidDimension"
	KindInvalidQuantity         ErrorKind = "InvalidQuantity"
	KindInvalidPrinting         ErrorKind = "InvalidPrinting"
	KindSizeViolation           ErrorKind = "SizeViolation"
	KindIncompatibleCombination ErrorKind = "IncompatibleCombination"
	KindDuplicateQuantities     ErrorKind = "DuplicateQuantities"
	KindQuantityOrderWarning    ErrorKind = "QuantityOrderWarning"
	KindEmptyQuantities         ErrorKind = "EmptyQuantities"
	KindTooManyQuantities       ErrorKind = "TooManyQuantities"
	KindMinimumQuantityNotMet   ErrorKind = "MinimumQuantityNotMet"
	KindUnknownPackageType      ErrorKind = "UnknownPackageType"
	KindUnknownMaterialType     ErrorKind = "UnknownMaterialType"
	KindUnknownPrintingType     ErrorKind = "UnknownPrintingType"
)

// Sentinel errors matched with errors.Is against a *QuoteError.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrMinimumQuantityNotMet = errors.New("minimum order quantity not met")
	ErrUnknownType           = errors.New("unknown cost model entry")
)

// Sentinel returns the sentinel error a kind belongs to.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindMinimumQuantityNotMet:
		return ErrMinimumQuantityNotMet
	case KindUnknownPackageType, KindUnknownMaterialType, KindUnknownPrintingType:
		return ErrUnknownType
	default:
		return ErrInvalidInput
	}
}

// DefaultMessage is the human-readable fallback for a kind.
func (k ErrorKind) DefaultMessage() string {
	switch k {
	case KindInvalidDimension:
		return "dimension is out of range"
	case KindInvalidQuantity:
		return "quantity is out of range"
	case KindInvalidPrinting:
		return "printing option is out of range"
	case KindSizeViolation:
		return "package exceeds the maximum size for its type"
	case KindIncompatibleCombination:
		return "package type cannot be made from this material"
	case KindDuplicateQuantities:
		return "duplicate quantities were ignored"
	case KindQuantityOrderWarning:
		return "quantities are not in ascending order"
	case KindEmptyQuantities:
		return "at least one quantity is required"
	case KindTooManyQuantities:
		return "too many quantities requested"
	case KindMinimumQuantityNotMet:
		return "quantity is below the product minimum order quantity"
	case KindUnknownPackageType:
		return "package type has no cost model entry"
	case KindUnknownMaterialType:
		return "material type has no cost model entry"
	case KindUnknownPrintingType:
		return "printing type has no cost model entry"
	default:
		return string(k)
	}
}

// Severity separates blocking errors from advisory warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single validation finding.
//
// @Description Validation finding with kind, severity and offending field
type Issue struct {
	Kind     ErrorKind `json:"kind" example:"SizeViolation"`
	Severity Severity  `json:"severity" example:"error"`
	Field    string    `json:"field,omitempty" example:"widthMm"`
	Message  string    `json:"message" example:"widthMm 700 exceeds 600 for flat_3_side"`
} // @name Issue

// NewIssue builds an error-level issue.
func NewIssue(kind ErrorKind, field, format string, args ...any) Issue {
	return Issue{Kind: kind, Severity: SeverityError, Field: field, Message: fmt.Sprintf(format, args...)}
}

// NewWarning builds a warning-level issue.
func NewWarning(kind ErrorKind, field, format string, args ...any) Issue {
	return Issue{Kind: kind, Severity: SeverityWarning, Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether the issue blocks calculation.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

// Issues is a list of validation findings.
type Issues []Issue

// Errors returns only the blocking issues.
func (is Issues) Errors() Issues {
	var out Issues
	for _, i := range is {
		if i.IsError() {
			out = append(out, i)
		}
	}
	return out
}

// Warnings returns only the advisory issues.
func (is Issues) Warnings() Issues {
	var out Issues
	for _, i := range is {
		if !i.IsError() {
			out = append(out, i)
		}
	}
	return out
}

// HasErrors reports whether any issue blocks calculation.
func (is Issues) HasErrors() bool {
	for _, i := range is {
		if i.IsError() {
			return true
		}
	}
	return false
}

// Err folds the blocking issues into a *QuoteError, or nil when there are none.
// The first blocking issue decides the error kind.
func (is Issues) Err() error {
	errs := is.Errors()
	if len(errs) == 0 {
		return nil
	}
	return &QuoteError{Kind: errs[0].Kind, Message: errs[0].Message, Issues: errs}
}

// QuoteError is returned by validation and calculation.
type QuoteError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Issues  Issues    `json:"issues,omitempty"`
}

// NewQuoteError builds a QuoteError with a formatted message.
func NewQuoteError(kind ErrorKind, format string, args ...any) *QuoteError {
	return &QuoteError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *QuoteError) Error() string {
	if len(e.Issues) <= 1 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	parts := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		parts = append(parts, i.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(parts, "; "))
}

// Is matches the sentinel error of the kind.
func (e *QuoteError) Is(target error) bool {
	return e.Kind.Sentinel() == target
}

// KindOf extracts the ErrorKind of err, or "" if err is not a *QuoteError.
func KindOf(err error) ErrorKind {
	var qe *QuoteError
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return ""
}
