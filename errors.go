package onboarding

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownField  = "unknown_field"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeDuplicateKey  = "duplicate_key"
	// Domain passes (business semantics)
	CodeDomainRange  = "domain_range"
	CodeBusinessRule = "business_rule"
	CodeNotAvailable = "not_available"
)

// Issue represents a single field validation failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /perSkillExperience/Go).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  `json:"-"` // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":30000, "max":200000, "got":25000})
	// for i18n and observability.
	Params map[string]any `json:",omitempty"`
	// Rule optionally records the rule name that produced this issue.
	Rule string `json:",omitempty"`
}

// Field returns the field name the issue is attached to: the pointer without
// its leading slash, so "/perSkillExperience/Go" becomes "perSkillExperience/Go".
func (it Issue) Field() string {
	return strings.TrimPrefix(it.Path, "/")
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /fullName
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// FieldErrors flattens the issues into field → message. When a field carries
// several issues the first one wins, which keeps the inline message stable.
func (iss Issues) FieldErrors() map[string]string {
	out := make(map[string]string, len(iss))
	for _, it := range iss {
		f := it.Field()
		if _, dup := out[f]; dup {
			continue
		}
		out[f] = it.Message
	}
	return out
}

// Fields returns the sorted distinct field names carrying issues.
func (iss Issues) Fields() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, it := range iss {
		f := it.Field()
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// On returns the issues attached to the given field.
func (iss Issues) On(field string) Issues {
	var out Issues
	for _, it := range iss {
		if it.Field() == field {
			out = append(out, it)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Operational errors. These are not validation failures and are never
// attached to a field.
var (
	ErrUnknownField    = errors.New("onboarding: unknown field")
	ErrSessionComplete = errors.New("onboarding: session already submitted")
	ErrNotOnReview     = errors.New("onboarding: submit is only allowed from the review step")
)
