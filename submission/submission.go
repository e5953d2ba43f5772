// Package submission is the boundary where a finalized record leaves the
// engine: it encodes the payload and checks it against the published JSON
// Schema contract before anything is emitted.
package submission

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/qri-io/jsonschema"

	onboarding "github.com/reoring/onboarding"
)

//go:embed payload.schema.json
var contractJSON []byte

// ErrContract reports a payload that does not satisfy the contract.
var ErrContract = errors.New("submission: payload violates contract")

var (
	contractOnce sync.Once
	contract     *jsonschema.Schema
	contractErr  error
)

func compiled() (*jsonschema.Schema, error) {
	contractOnce.Do(func() {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(contractJSON, rs); err != nil {
			contractErr = fmt.Errorf("submission: compile contract: %w", err)
			return
		}
		contract = rs
	})
	return contract, contractErr
}

// Contract returns the JSON Schema every payload must satisfy.
func Contract() []byte { return append([]byte(nil), contractJSON...) }

// Check validates an encoded payload against the contract. Violations are
// reported as onboarding.Issues wrapped with ErrContract.
func Check(ctx context.Context, payload []byte) error {
	rs, err := compiled()
	if err != nil {
		return err
	}
	kerrs, err := rs.ValidateBytes(ctx, payload)
	if err != nil {
		return fmt.Errorf("submission: validate payload: %w", err)
	}
	if len(kerrs) == 0 {
		return nil
	}
	iss := make(onboarding.Issues, 0, len(kerrs))
	for _, ke := range kerrs {
		it := onboarding.IssueAt(onboarding.NewRef().At(ke.PropertyPath), onboarding.CodeInvalidFormat, ke.Message, nil)
		if ke.InvalidValue != nil {
			it.Params = map[string]any{"got": ke.InvalidValue}
		}
		it.Rule = "contract"
		iss = append(iss, it)
	}
	return fmt.Errorf("%w: %w", ErrContract, iss)
}

// Encode marshals the submission and checks it against the contract.
func Encode(ctx context.Context, sub onboarding.Submission) ([]byte, error) {
	b, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("submission: encode: %w", err)
	}
	if err := Check(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Write emits the checked payload, indented, followed by a newline.
func Write(ctx context.Context, w io.Writer, sub onboarding.Submission) error {
	if _, err := Encode(ctx, sub); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return fmt.Errorf("submission: encode: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("submission: write: %w", err)
	}
	return nil
}

// Decode parses a payload previously produced by Encode.
func Decode(ctx context.Context, payload []byte) (onboarding.Submission, error) {
	if err := Check(ctx, payload); err != nil {
		return onboarding.Submission{}, err
	}
	var sub onboarding.Submission
	if err := json.Unmarshal(payload, &sub); err != nil {
		return onboarding.Submission{}, fmt.Errorf("submission: decode: %w", err)
	}
	return sub, nil
}
