package store

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	onboarding "github.com/reoring/onboarding"
)

var errConvert = errors.New("store: cannot convert value")

var (
	pictureType = reflect.TypeOf(&onboarding.ProfilePicture{})
	boolPtrType = reflect.TypeOf((*bool)(nil))
)

// convert coerces loosely typed input (presentation values, decoded
// JSON/YAML) into the field's Go type.
func convert(t reflect.Type, value any) (reflect.Value, error) {
	switch {
	case t == pictureType:
		pp, err := toPicture(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(pp), nil
	case t == boolPtrType:
		if value == nil {
			return reflect.Zero(t), nil
		}
		b, err := toBool(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&b), nil
	}

	switch t.Kind() {
	case reflect.String:
		if value == nil {
			return reflect.Zero(t), nil
		}
		s, ok := value.(string)
		if !ok {
			rv := reflect.ValueOf(value)
			if !rv.IsValid() || rv.Kind() != reflect.String {
				return reflect.Value{}, errConvert
			}
			s = rv.String()
		}
		return reflect.ValueOf(s).Convert(t), nil
	case reflect.Float64:
		f, err := toFloat(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(f), nil
	case reflect.Int:
		f, err := toFloat(value)
		if err != nil || f != math.Trunc(f) {
			return reflect.Value{}, errConvert
		}
		return reflect.ValueOf(int(f)), nil
	case reflect.Bool:
		b, err := toBool(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil
	case reflect.Slice:
		ss, err := toStrings(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(ss), nil
	case reflect.Map:
		m, err := toYearsMap(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(m), nil
	}
	return reflect.Value{}, errConvert
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case interface{ Float64() (float64, error) }:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, errConvert
		}
		return f, nil
	}
	return 0, errConvert
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case *bool:
		if v == nil {
			return false, errConvert
		}
		return *v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, errConvert
		}
		return b, nil
	}
	return false, errConvert
}

func toStrings(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			s, ok := it.(string)
			if !ok {
				return nil, errConvert
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		out := []string{}
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
	return nil, errConvert
}

func toYearsMap(value any) (map[string]float64, error) {
	out := map[string]float64{}
	switch v := value.(type) {
	case nil:
		return out, nil
	case map[string]float64:
		for k, y := range v {
			out[k] = y
		}
		return out, nil
	case map[string]int:
		for k, y := range v {
			out[k] = float64(y)
		}
		return out, nil
	case map[string]any:
		for k, y := range v {
			f, err := toFloat(y)
			if err != nil {
				return nil, err
			}
			out[k] = f
		}
		return out, nil
	}
	return nil, errConvert
}

func toPicture(value any) (*onboarding.ProfilePicture, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *onboarding.ProfilePicture:
		if v == nil {
			return nil, nil
		}
		pp := *v
		return &pp, nil
	case onboarding.ProfilePicture:
		return &v, nil
	case map[string]any:
		pp := &onboarding.ProfilePicture{}
		if n, ok := v["name"].(string); ok {
			pp.Name = n
		}
		if m, ok := v["mimeType"].(string); ok {
			pp.MimeType = m
		}
		if sz, ok := v["size"]; ok {
			f, err := toFloat(sz)
			if err != nil {
				return nil, err
			}
			pp.Size = int64(f)
		}
		return pp, nil
	}
	return nil, errConvert
}
