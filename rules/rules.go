// Package rules composes field validators: conditional execution, AND/OR
// combinators and the small set of generic field checks the step schemas
// are assembled from.
package rules

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/i18n"
)

// Rule is an alias for a field validator.
type Rule = onboarding.Validator

// Op defines simple comparison operators for If(...).Then(...)
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Conditional composes conditional execution of rules.
type Conditional struct {
	path string
	op   Op
	want any
	pred func(onboarding.DomainCtx, onboarding.FormRecord) bool
	all  []Conditional // composite AND
	any  []Conditional // composite OR
}

// If builds a conditional that evaluates a record field against a value using an operator.
// The path is a JSON Pointer like "/jobType" using record keys.
func If(path string, op Op, want any) Conditional {
	return Conditional{path: normalizePath(path), op: op, want: want}
}

// When builds a conditional from an arbitrary predicate, for conditions that
// need derived values (age, catalog membership).
func When(pred func(onboarding.DomainCtx, onboarding.FormRecord) bool) Conditional {
	return Conditional{pred: pred}
}

// IfAll builds a conditional that requires all conditions to hold.
func IfAll(conds ...Conditional) Conditional { return Conditional{all: conds} }

// IfAny builds a conditional that requires any condition to hold.
func IfAny(conds ...Conditional) Conditional { return Conditional{any: conds} }

// And combines the receiver with additional conditions using logical AND.
func (c Conditional) And(others ...Conditional) Conditional {
	conds := append([]Conditional{c}, others...)
	return IfAll(conds...)
}

// Holds evaluates the condition against the record.
func (c Conditional) Holds(d onboarding.DomainCtx, v onboarding.FormRecord) bool {
	return evalConditional(d, v, c)
}

// Then attaches rules to run when the condition is satisfied.
func (c Conditional) Then(rules ...Rule) Rule {
	inner := And(rules...)
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		if !evalConditional(d, v, c) {
			return nil
		}
		return inner(d, v)
	}
}

// And executes all rules and concatenates Issues.
func And(rules ...Rule) Rule {
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		var out []onboarding.Issue
		for _, r := range rules {
			if r == nil {
				continue
			}
			if iss := r(d, v); len(iss) > 0 {
				out = append(out, iss...)
			}
		}
		return out
	}
}

// Chain runs rules in order and stops at the first one reporting issues. It
// models "required, then format" where only one message per field is shown.
func Chain(rules ...Rule) Rule {
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		for _, r := range rules {
			if r == nil {
				continue
			}
			if iss := r(d, v); len(iss) > 0 {
				return iss
			}
		}
		return nil
	}
}

// ---------- field checks ----------

// Required fails when the field is blank: empty or whitespace-only string,
// empty collection, false bool or nil pointer.
func Required(field, msgID string) Rule {
	p := normalizePath(field)
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		val, ok := valueAtPath(v, p)
		if ok && !isBlank(val) {
			return nil
		}
		return []onboarding.Issue{at(d, p).Issue(onboarding.CodeRequired, i18n.T(msgID, nil))}
	}
}

// MinLen fails when a string field has fewer than n characters, not counting
// surrounding whitespace.
func MinLen(field string, n int, msgID string) Rule {
	p := normalizePath(field)
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		s, _ := stringAt(v, p)
		if got := utf8.RuneCountInString(strings.TrimSpace(s)); got < n {
			return []onboarding.Issue{at(d, p).Issue(onboarding.CodeTooShort, i18n.T(msgID, nil), "min", n, "got", got)}
		}
		return nil
	}
}

// MaxLen fails when a string field has more than n characters.
func MaxLen(field string, n int, msgID string) Rule {
	p := normalizePath(field)
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		s, _ := stringAt(v, p)
		if got := utf8.RuneCountInString(s); got > n {
			return []onboarding.Issue{at(d, p).Issue(onboarding.CodeTooLong, i18n.T(msgID, nil), "max", n, "got", got)}
		}
		return nil
	}
}

// Matches fails when a string field does not match re. Blank values are left
// to Required.
func Matches(field string, re *regexp.Regexp, msgID string) Rule {
	p := normalizePath(field)
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		s, _ := stringAt(v, p)
		if s == "" || re.MatchString(s) {
			return nil
		}
		return []onboarding.Issue{at(d, p).Issue(onboarding.CodePattern, i18n.T(msgID, nil), "pattern", re.String())}
	}
}

// OneOf fails when a string field is not one of allowed.
func OneOf(field string, allowed []string, msgID string) Rule {
	p := normalizePath(field)
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		s, _ := stringAt(v, p)
		if slices.Contains(allowed, s) {
			return nil
		}
		return []onboarding.Issue{at(d, p).Issue(onboarding.CodeInvalidEnum, i18n.T(msgID, nil), "allowed", strings.Join(allowed, ","), "got", s)}
	}
}

// IntRange fails when an integer field is outside [lo, hi].
func IntRange(field string, lo, hi int64, msgID string) Rule {
	p := normalizePath(field)
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		val, ok := valueAtPath(v, p)
		if !ok {
			return nil
		}
		rv := reflect.ValueOf(val)
		if !isIntLike(rv.Kind()) {
			return nil
		}
		n := toInt64(rv)
		if n < lo || n > hi {
			return []onboarding.Issue{at(d, p).Issue(onboarding.CodeDomainRange, i18n.T(msgID, nil), "min", lo, "max", hi, "got", n)}
		}
		return nil
	}
}

// IsTrue fails unless a bool field is true.
func IsTrue(field, msgID string) Rule {
	p := normalizePath(field)
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		val, _ := valueAtPath(v, p)
		if b, ok := val.(bool); ok && b {
			return nil
		}
		return []onboarding.Issue{at(d, p).Issue(onboarding.CodeBusinessRule, i18n.T(msgID, nil))}
	}
}

// ------- helpers -------

func normalizePath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if p[0] != '/' {
		return "/" + p
	}
	return p
}

func stringAt(v onboarding.FormRecord, p string) (string, bool) {
	val, ok := valueAtPath(v, p)
	if !ok {
		return "", false
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

func isBlank(val any) bool {
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func evalConditional(d onboarding.DomainCtx, v onboarding.FormRecord, c Conditional) bool {
	// composite AND
	if len(c.all) > 0 {
		for _, it := range c.all {
			if !evalConditional(d, v, it) {
				return false
			}
		}
		return true
	}
	// composite OR
	if len(c.any) > 0 {
		for _, it := range c.any {
			if evalConditional(d, v, it) {
				return true
			}
		}
		return false
	}
	if c.pred != nil {
		return c.pred(d, v)
	}
	// simple predicate
	cur, ok := valueAtPath(v, c.path)
	if !ok {
		return false
	}
	return compare(cur, c.op, c.want)
}

// valueAtPath navigates the record by JSON Pointer using record keys.
func valueAtPath(v onboarding.FormRecord, pointer string) (any, bool) {
	return valueAtPathWithin(v, strings.TrimPrefix(pointer, "/"))
}

func valueAtPathWithin(v any, rel string) (any, bool) {
	if rel == "" {
		return v, true
	}
	cur := reflect.ValueOf(v)
	parts := strings.Split(rel, "/")
	for _, seg := range parts {
		seg = onboarding.UnescapeToken(seg)
		if !cur.IsValid() {
			return nil, false
		}
		if cur.Kind() == reflect.Pointer {
			if cur.IsNil() {
				return nil, false
			}
			cur = cur.Elem()
		}
		switch cur.Kind() {
		case reflect.Struct:
			found := false
			rt := cur.Type()
			for i := 0; i < rt.NumField(); i++ {
				sf := rt.Field(i)
				if !sf.IsExported() {
					continue
				}
				if onboarding.ResolveStructKey(sf) == seg {
					cur = cur.Field(i)
					found = true
					break
				}
			}
			if !found {
				return nil, false
			}
		case reflect.Map:
			mv := cur.MapIndex(reflect.ValueOf(seg))
			if !mv.IsValid() {
				return nil, false
			}
			cur = mv
		case reflect.Slice, reflect.Array:
			var idx int
			if _, err := fmt.Sscanf(seg, "%d", &idx); err != nil {
				return nil, false
			}
			if idx < 0 || idx >= cur.Len() {
				return nil, false
			}
			cur = cur.Index(idx)
		default:
			return nil, false
		}
	}
	if cur.Kind() == reflect.Pointer {
		if cur.IsNil() {
			return nil, true
		}
		cur = cur.Elem()
	}
	return cur.Interface(), true
}

func compare(cur any, op Op, want any) bool {
	switch op {
	case Eq:
		return reflect.DeepEqual(cur, want) || looseEqual(cur, want)
	case Ne:
		return !(reflect.DeepEqual(cur, want) || looseEqual(cur, want))
	case Lt, Le, Gt, Ge:
		return compareOrdered(cur, op, want)
	default:
		return false
	}
}

// looseEqual treats named string types (JobType, Relationship) as equal to
// their underlying string value.
func looseEqual(cur, want any) bool {
	c := reflect.ValueOf(cur)
	w := reflect.ValueOf(want)
	if c.Kind() == reflect.String && w.Kind() == reflect.String {
		return c.String() == w.String()
	}
	return false
}

func compareOrdered(cur any, op Op, want any) bool {
	c := reflect.ValueOf(cur)
	w := reflect.ValueOf(want)
	var a, b float64
	switch {
	case isIntLike(c.Kind()) && isIntLike(w.Kind()):
		a, b = float64(toInt64(c)), float64(toInt64(w))
	case isNumeric(c.Kind()) && isNumeric(w.Kind()):
		a, b = toFloat64(c), toFloat64(w)
	default:
		return false
	}
	switch op {
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Gt:
		return a > b
	case Ge:
		return a >= b
	}
	return false
}

func isIntLike(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func isNumeric(k reflect.Kind) bool {
	return isIntLike(k) || k == reflect.Float32 || k == reflect.Float64
}

func toInt64(v reflect.Value) int64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	default:
		return 0
	}
}

func toFloat64(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	default:
		return float64(toInt64(v))
	}
}

func at(d onboarding.DomainCtx, p string) onboarding.PathRef {
	if d.Ref == nil {
		return onboarding.NewRef().At(p)
	}
	return d.Ref.At(p)
}
