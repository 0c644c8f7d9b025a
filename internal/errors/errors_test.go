package errors

import (
	"bytes"
	stderrors "errors"
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
			name:    "config error",
			code:    "E001",
			wantMsg: "Options are required",
			wantCat: CategoryConfig,
		},
		{
			name:    "registration error",
			code:    "E101",
			wantMsg: "Invalid route registration",
			wantCat: CategoryRegistration,
		},
		{
			name:    "misuse warning",
			code:    "W301",
			wantMsg: "No halted route available",
			wantCat: CategoryMisuse,
		},
		{
			name:    "unknown error code",
			code:    "E999",
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

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "jrouter.json")
	if err.Message != `file "jrouter.json" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestRouterError_Error(t *testing.T) {
	err := New("E101")
	if got, want := err.Error(), "E101: Invalid route registration"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = New("E101").WithDetail(`pattern is empty`)
	if got, want := err.Error(), "E101: Invalid route registration (pattern is empty)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = New("E201").Wrap(fmt.Errorf("status 404"))
	if got, want := err.Error(), "E201: Content load failed: status 404"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &RouterError{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestRouterError_Is(t *testing.T) {
	err := fmt.Errorf("register: %w", New("E102").WithDetail("bad regex"))

	if !stderrors.Is(err, New("E102")) {
		t.Error("expected errors.Is to match on code")
	}
	if stderrors.Is(err, New("E101")) {
		t.Error("errors.Is matched a different code")
	}
	if stderrors.Is(err, &RouterError{Message: "no code"}) {
		t.Error("errors.Is matched a code-less target")
	}
}

func TestRouterError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := New("E201").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable through errors.Is")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E201") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E103")
	if got := FromError(fmt.Errorf("wrap: %w", orig), "E201"); got != orig {
		t.Error("FromError should return the existing RouterError")
	}

	got := FromError(stderrors.New("boom"), "E201")
	if got.Code != "E201" || got.Wrapped == nil {
		t.Errorf("FromError = %+v, want E201 wrapping boom", got)
	}
}

func TestHasCode(t *testing.T) {
	inner := New("E102")
	outer := New("E201").Wrap(inner)

	if !HasCode(outer, "E201") {
		t.Error("HasCode(outer, E201) = false")
	}
	if !HasCode(outer, "E102") {
		t.Error("HasCode(outer, E102) = false")
	}
	if HasCode(outer, "E001") {
		t.Error("HasCode(outer, E001) = true")
	}
	if HasCode(stderrors.New("plain"), "E001") {
		t.Error("HasCode on plain error = true")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E101").
		WithDetail(`pattern "" is empty`).
		WithSuggestion(`Register("/users/{id}", "users.html")`).
		Format()

	for _, want := range []string{
		"ERROR E101: Invalid route registration",
		`pattern "" is empty`,
		`Hint: Register("/users/{id}", "users.html")`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormat_TemplateDetailAndWarning(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("W301").Format()
	if !strings.Contains(out, "WARNING W301") {
		t.Errorf("misuse should format as warning:\n%s", out)
	}
	if !strings.Contains(out, "Resume was called") {
		t.Errorf("template detail missing:\n%s", out)
	}
}

func TestFormatCompact(t *testing.T) {
	if got := New("E003").FormatCompact(); got != "E003: Content loader missing" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six seven", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if len(lines) < 3 {
		t.Errorf("expected at least 3 lines, got %d", len(lines))
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, New("E004"))
	if !strings.Contains(buf.String(), "E004: Location source missing") {
		t.Errorf("PrintError output = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("PrintError plain output = %q", buf.String())
	}
}

func TestAllCodesHaveTemplates(t *testing.T) {
	for _, code := range GetAllCodes() {
		tmpl, ok := GetTemplate(code)
		if !ok {
			t.Fatalf("GetTemplate(%q) missing", code)
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template %q incomplete: %+v", code, tmpl)
		}
	}
}
