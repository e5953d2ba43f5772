package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/submission"
	"github.com/reoring/onboarding/wizard"
)

const replHelp = `commands:
  set <field> <value>   write a field (JSON for objects and lists, "null" clears)
  get <field>           print a field
  next | advance        validate the step and move forward
  back | retreat        move back one step
  status                show the step, its fields and the last errors
  show                  print the review summary
  submit                submit from the review step
  help                  this text
  quit                  leave
`

// REPL is a line-oriented front end over one session.
type REPL struct {
	nav *wizard.Navigator
	in  io.Reader
	out io.Writer
}

// NewREPL binds a navigator to an input and output stream.
func NewREPL(nav *wizard.Navigator, in io.Reader, out io.Writer) *REPL {
	return &REPL{nav: nav, in: in, out: out}
}

// Run reads commands until quit, end of input or a successful submit, which
// is printed and returned.
func (r *REPL) Run(ctx context.Context) (*onboarding.Submission, error) {
	sc := bufio.NewScanner(r.in)
	r.prompt()
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cmd, rest, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		rest = strings.TrimSpace(rest)
		switch cmd {
		case "":
		case "quit", "exit":
			return nil, nil
		case "help":
			fmt.Fprint(r.out, replHelp)
		case "set":
			field, raw, _ := strings.Cut(rest, " ")
			if field == "" {
				fmt.Fprintln(r.out, "usage: set <field> <value>")
				break
			}
			r.report(Apply(ctx, r.nav, Action{Op: OpSet, Field: field, Value: ParseValue(raw)}))
		case "get":
			v, err := r.nav.Store().GetField(rest)
			if err != nil {
				fmt.Fprintln(r.out, "error:", err)
				break
			}
			fmt.Fprintf(r.out, "%s = %v\n", rest, display(v))
		case "next", "advance":
			r.report(Apply(ctx, r.nav, Action{Op: OpAdvance}))
		case "back", "retreat":
			r.report(Apply(ctx, r.nav, Action{Op: OpRetreat}))
		case "status":
			r.status()
		case "show":
			o, _ := Apply(ctx, r.nav, Action{Op: OpShow})
			fmt.Fprint(r.out, o.Output)
		case "submit":
			o, sub := Apply(ctx, r.nav, Action{Op: OpSubmit})
			if sub == nil {
				r.report(o, nil)
				break
			}
			if err := submission.Write(ctx, r.out, *sub); err != nil {
				return sub, err
			}
			return sub, nil
		default:
			fmt.Fprintf(r.out, "unknown command %q (try help)\n", cmd)
		}
		r.prompt()
	}
	return nil, sc.Err()
}

func (r *REPL) prompt() {
	cur := r.nav.Current()
	fmt.Fprintf(r.out, "[%s %d/%d]> ", cur.Key(), cur.Number(), len(onboarding.Steps))
}

func (r *REPL) report(o Outcome, _ *onboarding.Submission) {
	if o.OK {
		fmt.Fprintf(r.out, "ok (%s)\n", o.Step)
		return
	}
	if len(o.Errors) == 0 {
		fmt.Fprintln(r.out, "error:", o.Err)
		return
	}
	writeErrors(r.out, o.Errors)
}

func (r *REPL) status() {
	cur := r.nav.Current()
	d := r.nav.Derived()
	fmt.Fprintf(r.out, "step %d/%d: %s\n", cur.Number(), len(onboarding.Steps), cur)
	fmt.Fprintf(r.out, "fields: %s\n", strings.Join(d.VisibleFields(cur), ", "))
	fmt.Fprintf(r.out, "required: %s\n", strings.Join(d.RequiredFields(cur), ", "))
	switch cur {
	case onboarding.StepJob:
		if !d.SalaryBounds.IsZero() {
			fmt.Fprintf(r.out, "salary: %v-%v step %v\n", d.SalaryBounds.Min, d.SalaryBounds.Max, d.SalaryBounds.Step)
		}
		names := make([]string, len(d.Managers))
		for i, m := range d.Managers {
			names[i] = m.Name
		}
		fmt.Fprintf(r.out, "managers: %s\n", strings.Join(names, ", "))
	case onboarding.StepSkills:
		fmt.Fprintf(r.out, "skills: %s\n", strings.Join(d.AvailableSkills, ", "))
	}
	var touched []string
	for _, f := range r.nav.Store().Presence().Touched() {
		if st, ok := onboarding.StepOf(f); ok && st == cur {
			touched = append(touched, f)
		}
	}
	fmt.Fprintf(r.out, "touched: %s\n", strings.Join(touched, ", "))
	if last := r.nav.LastResult(); !last.Valid && len(last.Errors) > 0 {
		writeErrors(r.out, last.Errors)
	}
}

func writeErrors(w io.Writer, errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f, errs[f])
	}
}

// ParseValue turns REPL input into a field value: JSON objects, lists and
// quoted strings are decoded, "null" clears, anything else is passed as text
// for the store to convert.
func ParseValue(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "null" {
		return nil
	}
	if raw != "" && strings.ContainsRune(`{["`, rune(raw[0])) {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			return v
		}
	}
	return raw
}

func display(v any) any {
	switch x := v.(type) {
	case *bool:
		if x == nil {
			return "<unset>"
		}
		return *x
	case *onboarding.ProfilePicture:
		if x == nil {
			return "<unset>"
		}
		return *x
	}
	return v
}
