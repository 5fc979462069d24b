package validator

import "testing"

type signup struct {
	Name     string `validate:"required,notblank"`
	Password string `validate:"required,password_policy"`
}

func TestPasswordMeetsPolicy(t *testing.T) {
	cases := map[string]bool{
		"Admin123!": true,
		"aB3def":    true,
		"aB3de":     false, // too short
		"abcdef1":   false, // no upper
		"ABCDEF1":   false, // no lower
		"Abcdefg":   false, // no digit
	}
	for pw, want := range cases {
		if got := PasswordMeetsPolicy(pw); got != want {
			t.Fatalf("%q: expected %v, got %v", pw, want, got)
		}
	}
}

func TestValidateStructCustomTags(t *testing.T) {
	errs := ValidateStruct(&signup{Name: "   ", Password: "weak"})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
	if errs[0].Tag != "notblank" || errs[1].Tag != "password_policy" {
		t.Fatalf("unexpected tags: %s, %s", errs[0].Tag, errs[1].Tag)
	}

	if err := Check(&signup{Name: "Ada", Password: "Secret1"}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
}
