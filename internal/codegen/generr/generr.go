// Package generr holds the single error type every generation stage returns.
//
// Each failure carries a Kind so callers (the CLI, orchestration glue) can map
// it to an exit code or an API response without string matching.
package generr

import (
	"errors"
	"fmt"
)

// Kind classifies a generation failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindSchemaMissing
	KindSchemaParse
	KindUnknownType
	KindTemplateFileMissing
	KindTemplatePlaceholder
	KindIO
	KindDuplicateName
	KindUnsupportedKind
	KindUnsupportedPlatform
)

var kindTitles = map[Kind]string{
	KindUnknown:             "generation error",
	KindSchemaMissing:       "schema missing",
	KindSchemaParse:         "schema parse error",
	KindUnknownType:         "unknown schema type",
	KindTemplateFileMissing: "template file missing",
	KindTemplatePlaceholder: "unresolved template placeholder",
	KindIO:                  "i/o error",
	KindDuplicateName:       "duplicate capability name",
	KindUnsupportedKind:     "unsupported capability kind",
	KindUnsupportedPlatform: "unsupported platform",
}

func (k Kind) String() string {
	if t, ok := kindTitles[k]; ok {
		return t
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the canonical generation error.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Detail == "" && e.Err == nil:
		return e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case e.Detail == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a generation error of the same kind, so the
// sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Detail == "" && t.Err == nil
}

// Sentinels for errors.Is.
var (
	ErrSchemaMissing       = &Error{Kind: KindSchemaMissing}
	ErrSchemaParse         = &Error{Kind: KindSchemaParse}
	ErrUnknownType         = &Error{Kind: KindUnknownType}
	ErrTemplateFileMissing = &Error{Kind: KindTemplateFileMissing}
	ErrTemplatePlaceholder = &Error{Kind: KindTemplatePlaceholder}
	ErrIO                  = &Error{Kind: KindIO}
	ErrDuplicateName       = &Error{Kind: KindDuplicateName}
	ErrUnsupportedKind     = &Error{Kind: KindUnsupportedKind}
	ErrUnsupportedPlatform = &Error{Kind: KindUnsupportedPlatform}
)

func SchemaMissing(detail string) *Error {
	return &Error{Kind: KindSchemaMissing, Detail: detail}
}
func SchemaParse(detail string, err error) *Error {
	return &Error{Kind: KindSchemaParse, Detail: detail, Err: err}
}
func UnknownType(detail string) *Error {
	return &Error{Kind: KindUnknownType, Detail: detail}
}
func TemplateFileMissing(detail string, err error) *Error {
	return &Error{Kind: KindTemplateFileMissing, Detail: detail, Err: err}
}
func TemplatePlaceholder(detail string) *Error {
	return &Error{Kind: KindTemplatePlaceholder, Detail: detail}
}
func IO(detail string, err error) *Error {
	return &Error{Kind: KindIO, Detail: detail, Err: err}
}
func DuplicateName(detail string) *Error {
	return &Error{Kind: KindDuplicateName, Detail: detail}
}
func UnsupportedKind(detail string) *Error {
	return &Error{Kind: KindUnsupportedKind, Detail: detail}
}
func UnsupportedPlatform(detail string) *Error {
	return &Error{Kind: KindUnsupportedPlatform, Detail: detail}
}

// KindOf returns the kind of the first generation error in err's chain, or
// KindUnknown when there is none.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}
