package onboarding

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/reoring/onboarding/i18n"
)

// dupFrame tracks one open JSON container while scanning tokens.
type dupFrame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string // last key read (objects)
	index        int    // next element index (arrays)
}

// DetectJSONDuplicateKeys reports object keys that appear more than once in
// JSON input; decoders silently keep the last one. maxIssues <= 0 means
// unlimited.
func DetectJSONDuplicateKeys(data []byte, maxIssues int) (Issues, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		iss   Issues
		stack []*dupFrame
	)
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top.object {
			top.expectingKey = true
		} else {
			top.index++
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return iss, fmt.Errorf("onboarding: scan json: %w", err)
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, &dupFrame{object: true, keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, &dupFrame{})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := stack[n-1]
				if _, dup := top.keys[v]; dup {
					msg := i18n.T(i18n.DuplicateKey, map[string]string{"key": v})
					iss = append(iss, dupPath(stack, v).Issue(CodeDuplicateKey, msg, "key", v))
					if maxIssues > 0 && len(iss) >= maxIssues {
						return iss, nil
					}
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
	return iss, nil
}

func dupPath(stack []*dupFrame, key string) PathRef {
	p := NewRef().Root()
	for _, f := range stack[:len(stack)-1] {
		if f.object {
			p = p.Field(f.key)
		} else {
			p = p.Index(f.index)
		}
	}
	return p.Field(key)
}
