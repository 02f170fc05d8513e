package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "construction error",
			code:    CodeMissingQuery,
			wantMsg: "At least one argument required",
			wantCat: CategoryConstruction,
		},
		{
			name:    "reconcile error",
			code:    CodeVariantNotFound,
			wantMsg: "View variant not found",
			wantCat: CategoryReconcile,
		},
		{
			name:    "journal error",
			code:    CodeSessionNotFound,
			wantMsg: "Journal session not found",
			wantCat: CategoryJournal,
		},
		{
			name:    "unknown error code",
			code:    "VT999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	err := New(CodeVariantNotFound).WithDetail(`view "a" not found`)
	want := `VT203: View variant not found: view "a" not found`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := Newf(CategoryCLI, "unknown scenario %q", "x")
	if got := plain.Error(); got != `unknown scenario "x"` {
		t.Errorf("Error() = %q", got)
	}
}

func TestError_IsMatchesCode(t *testing.T) {
	err := fmt.Errorf("update: %w", New(CodeItemFactory).WithDetail("item 3"))

	if !errors.Is(err, New(CodeItemFactory)) {
		t.Error("errors.Is should match by code through wrapping")
	}
	if errors.Is(err, New(CodeNilItemView)) {
		t.Error("errors.Is should not match a different code")
	}
	if !HasCode(err, CodeItemFactory) {
		t.Error("HasCode should find the wrapped code")
	}
}

func TestError_Wrap(t *testing.T) {
	cause := errors.New("boom")
	err := New(CodeItemFactory).Wrap(cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable")
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeConfigParse) != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New(CodeConfigInvalid)
	if got := FromError(fmt.Errorf("ctx: %w", orig), CodeConfigParse); got != orig {
		t.Error("FromError should return an existing *Error unchanged")
	}

	got := FromError(errors.New("bad json"), CodeConfigParse)
	if got.Code != CodeConfigParse {
		t.Errorf("Code = %q, want %q", got.Code, CodeConfigParse)
	}
	if got.Detail != "bad json" {
		t.Errorf("Detail = %q, want %q", got.Detail, "bad json")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeVariantNotFound).WithDetail(`view "a" not found`)
	out := err.Format()

	for _, want := range []string{
		"ERROR VT203: View variant not found",
		`view "a" not found`,
		"Hint: Register the variant",
		"Learn more: https://viewtree.dev/docs/errors/VT203",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCause(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeJournalOpen).WithDetail("/tmp/j.db").Wrap(errors.New("timeout"))
	if out := err.Format(); !strings.Contains(out, "Caused by: timeout") {
		t.Errorf("Format() missing cause in:\n%s", out)
	}
	if out := err.FormatJSON(); !strings.Contains(out, `"cause":"timeout"`) {
		t.Errorf("FormatJSON() missing cause: %s", out)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var b strings.Builder
	Fprint(&b, fmt.Errorf("run: %w", New(CodeEmptyKey)))
	if !strings.Contains(b.String(), "ERROR VT103: key must be a non-empty string") {
		t.Errorf("Fprint(*Error) = %q", b.String())
	}

	b.Reset()
	Fprint(&b, errors.New("plain failure"))
	if got := b.String(); got != "\nERROR: plain failure\n\n" {
		t.Errorf("Fprint(error) = %q", got)
	}
}

func TestFormatCompact(t *testing.T) {
	err := New(CodeEmptyKey)
	if got := err.FormatCompact(); got != "VT103: key must be a non-empty string" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	out := New(CodeJournalOpen).WithDetail("locked").FormatJSON()
	for _, want := range []string{`"code":"VT401"`, `"category":"journal"`, `"detail":"locked"`} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatJSON() missing %s in %s", want, out)
		}
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("expected registered codes")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	if _, ok := GetTemplate(CodeItemFactory); !ok {
		t.Error("GetTemplate should find VT201")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than width", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should produce no lines")
	}
}
