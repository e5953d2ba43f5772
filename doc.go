// Package onboarding is the validation and state-transition engine behind the
// five-step employee onboarding form.
//
// The root package holds the shared vocabulary:
//
// - FormRecord, the single aggregate of every field across every step
// - Step, the tagged variant for Personal, Job, Skills, Emergency and Review
// - Issues, the stable error model (JSON Pointer path, code, message)
// - DomainCtx, the context handed to field validators and step rules
//
// Layout:
//   - field validators under validators/, step schemas under schema/
//   - derived (conditional) state under resolver/
//   - the form state store under store/ and the step navigator under wizard/
//   - the submission payload under submission/, scripted and interactive
//     sessions under session/ and the CLI under cmd/onboard
//
// Typical usage:
//
//	st := store.New(store.WithReference(refdata.Default()))
//	nav := wizard.New(st)
//	_ = st.SetField(ctx, "fullName", "Jane Doe")
//	res := nav.Advance(ctx)
//	if !res.Valid {
//		fmt.Println(res.Errors["fullName"])
//	}
package onboarding
