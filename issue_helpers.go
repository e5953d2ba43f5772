package onboarding

// IssueAt creates an Issue at the given path with provided code, message and params map.
// This is a convenience helper to improve readability at call sites with many parameters.
func IssueAt(p PathRef, code, msg string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: params}
}

// FieldIssue creates an Issue attached to a top-level field of FormRecord.
func FieldIssue(field, code, msg string, kv ...any) Issue {
	return NewRef().Root().Field(field).Issue(code, msg, kv...)
}
