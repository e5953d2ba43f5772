package onboarding

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// external key used by SetField/GetField and issue paths.
// Priority: json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// FieldByKey returns the addressable struct field of rec whose external key is
// key. The second result is false when no such field exists.
func FieldByKey(rec *FormRecord, key string) (reflect.Value, bool) {
	rv := reflect.ValueOf(rec).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if ResolveStructKey(sf) == key {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// FieldKeys lists every external key of FormRecord in declaration order.
func FieldKeys() []string {
	rt := reflect.TypeOf(FormRecord{})
	out := make([]string, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if k := ResolveStructKey(sf); k != "-" {
			out = append(out, k)
		}
	}
	return out
}
