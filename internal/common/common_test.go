package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesCode(t *testing.T) {
	err := NewError(CodeNotFound, "user not found", nil)
	if !Is(err, CodeNotFound) {
		t.Error("Is should match the error's code")
	}
	if Is(err, CodeConflict) {
		t.Error("Is should not match a different code")
	}
	if Is(errors.New("plain"), CodeNotFound) {
		t.Error("Is should not match uncoded errors")
	}
}

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	inner := NewError(CodeConflict, "duplicate", nil)
	wrapped := fmt.Errorf("saving application: %w", inner)
	if !Is(wrapped, CodeConflict) {
		t.Error("Is should see through fmt.Errorf wrapping")
	}
}

func TestTransitionErrorCarriesStatuses(t *testing.T) {
	err := NewTransitionError("pending", "hired")
	if !Is(err, CodeInvalidTransition) {
		t.Fatal("expected invalid transition code")
	}
	coded, ok := From(err)
	if !ok {
		t.Fatal("From should recover the coded error")
	}
	if coded.Fields["current_status"] != "pending" || coded.Fields["requested_status"] != "hired" {
		t.Errorf("unexpected fields: %v", coded.Fields)
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewError(CodeInternal, "failed to save", cause)
	if err.Error() != "failed to save: connection refused" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("cause should unwrap")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		sep  string
		want string
	}{
		{"Dina Maulida", "_", "dina_maulida"},
		{"Backend Engineer (Senior)", "_", "backend_engineer_senior"},
		{"  spaced  out  ", "-", "spaced-out"},
		{"Çüéê", "-", ""},
		{"already-slug", "-", "already-slug"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in, tc.sep); got != tc.want {
			t.Errorf("Slugify(%q, %q) = %q, want %q", tc.in, tc.sep, got, tc.want)
		}
	}
}
