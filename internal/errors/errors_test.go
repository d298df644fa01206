package errors

import (
	"bytes"
	"encoding/json"
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
			name:    "hook error",
			code:    "E101",
			wantMsg: "Hook called outside component render",
			wantCat: CategoryHook,
		},
		{
			name:    "host error",
			code:    "E103",
			wantMsg: "Host adapter mutation failed",
			wantCat: CategoryHost,
		},
		{
			name:    "render error",
			code:    "E104",
			wantMsg: "Component render failed",
			wantCat: CategoryRender,
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
	err := Newf(CategoryScene, "node %q has no tag", "root")
	if err.Message != `node "root" has no tag` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
}

func TestErrorString(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := New("E104").WithComponent("Counter").Wrap(cause)

	got := err.Error()
	want := "E104: Component render failed (in Counter): disk on fire"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnwrap(t *testing.T) {
	sentinel := stderrors.New("boom")
	err := New("E103").Wrap(sentinel)

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped sentinel")
	}

	var fe *FiberError
	if !stderrors.As(fmt.Errorf("outer: %w", err), &fe) {
		t.Fatal("errors.As should find the FiberError")
	}
	if fe.Code != "E103" {
		t.Errorf("Code = %q, want E103", fe.Code)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E103") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E101")
	if FromError(orig, "E103") != orig {
		t.Error("FromError should return an existing FiberError unchanged")
	}

	wrapped := FromError(stderrors.New("x"), "E103")
	if wrapped.Code != "E103" || wrapped.Wrapped == nil {
		t.Errorf("FromError = %+v", wrapped)
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("tick: %w", New("E104").Wrap(New("E102")))

	if !HasCode(err, "E104") {
		t.Error("HasCode(E104) = false")
	}
	if !HasCode(err, "E102") {
		t.Error("HasCode(E102) = false, want true through the chain")
	}
	if HasCode(err, "E103") {
		t.Error("HasCode(E103) = true")
	}
	if HasCode(nil, "E104") {
		t.Error("HasCode(nil) = true")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E102").
		WithComponent("TodoList").
		WithSuggestion("Move the UseEffect call out of the if block")

	out := err.Format()
	for _, want := range []string{
		"ERROR E102: Hook order changed between renders",
		"in TodoList",
		"Hint: Move the UseEffect call out of the if block",
		"Learn more: https://fiber.vango.dev/errors/E102",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() contains ANSI codes with colors disabled")
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E103").Wrap(stderrors.New("detached"))

	var got map[string]any
	if e := json.Unmarshal([]byte(err.FormatJSON()), &got); e != nil {
		t.Fatalf("FormatJSON is not valid JSON: %v", e)
	}
	if got["code"] != "E103" {
		t.Errorf("code = %v", got["code"])
	}
	if got["cause"] != "detached" {
		t.Errorf("cause = %v", got["cause"])
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("PrintError(plain) = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, New("E130"))
	if !strings.Contains(buf.String(), "E130") {
		t.Errorf("PrintError(FiberError) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than 10", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}

func TestRegistryCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("no codes registered")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("GetAllCodes not sorted: %v", codes)
		}
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template for %s incomplete: %+v", code, tmpl)
		}
	}
}

func TestRegister(t *testing.T) {
	Register("E199", ErrorTemplate{Category: CategoryCLI, Message: "custom"})
	defer delete(registry, "E199")

	if New("E199").Message != "custom" {
		t.Error("registered template not used")
	}
}
