package onboarding_test

import (
	"testing"

	onboarding "github.com/reoring/onboarding"
)

func TestDetectJSONDuplicateKeys_NoDup(t *testing.T) {
	js := []byte(`{"fullName":"Jane Doe","perSkillExperience":{"Go":1,"SQL":2},"primarySkills":["Go","SQL"]}`)
	iss, err := onboarding.DetectJSONDuplicateKeys(js, -1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("expected 0 issues, got %d: %v", len(iss), iss)
	}
}

func TestDetectJSONDuplicateKeys_WithDup(t *testing.T) {
	js := []byte(`{"email":"a@example.com","perSkillExperience":{"Go":1,"Go":2},"email":"b@example.com"}`)
	iss, err := onboarding.DetectJSONDuplicateKeys(js, -1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 2 {
		t.Fatalf("expected 2 issues, got %v", iss)
	}
	if iss[0].Code != onboarding.CodeDuplicateKey || iss[0].Path != "/perSkillExperience/Go" {
		t.Fatalf("first issue: %+v", iss[0])
	}
	if iss[1].Path != "/email" || iss[1].Message != "Duplicate key email" {
		t.Fatalf("second issue: %+v", iss[1])
	}
}

func TestDetectJSONDuplicateKeys_InsideArrays(t *testing.T) {
	js := []byte(`{"actions":[{"op":"advance"},{"op":"set","op":"submit"}]}`)
	iss, err := onboarding.DetectJSONDuplicateKeys(js, 1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 1 || iss[0].Path != "/actions/1/op" {
		t.Fatalf("issues: %v", iss)
	}
}
