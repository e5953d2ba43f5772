package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T(FullNameTwoWords, nil); msg != "Full Name must have at least 2 words" {
		t.Fatalf("unexpected english message: %q", msg)
	}

	SetLanguage("ja")
	if msg := T(FullNameTwoWords, nil); msg == "Full Name must have at least 2 words" || msg == "" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Placeholders(t *testing.T) {
	got := T(SalaryRange, map[string]string{"min": "50", "max": "150"})
	if got != "Salary Expectation must be between 50 and 150" {
		t.Fatalf("placeholders not expanded: %q", got)
	}
}

func TestTranslator_UnknownIDEchoes(t *testing.T) {
	if got := T("no.such.id", nil); got != "no.such.id" {
		t.Fatalf("expected id echo, got %q", got)
	}
}

type upper struct{}

func (upper) Message(id string, _ map[string]string) string { return "X:" + id }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if got := T(EmailInvalid, nil); got != "X:"+EmailInvalid {
		t.Fatalf("custom translator not used: %q", got)
	}
	SetTranslator(nil)
	if got := T(EmailInvalid, nil); got != "Invalid email address" {
		t.Fatalf("reset failed: %q", got)
	}
}

func TestDictionariesCoverSameIDs(t *testing.T) {
	for id := range messagesEN {
		if _, ok := messagesJA[id]; !ok {
			t.Fatalf("ja dictionary misses %s", id)
		}
	}
}
