package onboarding

import "context"

// DomainCtx provides validators and step rules with execution context and path
// building. Reference data and the clock travel in Ctx (see WithService).
type DomainCtx struct {
	Ctx  context.Context
	Step Step
	Ref  Ref
}

// NewDomainCtx builds a DomainCtx for the given step.
func NewDomainCtx(ctx context.Context, step Step) DomainCtx {
	return DomainCtx{Ctx: ctx, Step: step, Ref: NewRef()}
}

// Path returns a PathRef anchored at the given top-level field.
func (dc DomainCtx) Path(field string) PathRef {
	if dc.Ref == nil {
		return NewRef().Root().Field(field)
	}
	return dc.Ref.Root().Field(field)
}

// Validator checks one aspect of the record and reports the issues found.
type Validator = func(DomainCtx, FormRecord) []Issue
