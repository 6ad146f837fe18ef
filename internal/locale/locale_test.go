package locale

import (
	"errors"
	"testing"

	"sbasic/internal/diag"
)

func TestEveryCatalogIsComplete(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			cat, err := Load(name)
			if err != nil {
				t.Fatal(err)
			}
			if missing := cat.Missing(); len(missing) != 0 {
				t.Fatalf("catalog %s lacks %v", name, missing)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	got := Available()
	if len(got) != 2 || got[0] != "en" || got[1] != "ru" {
		t.Fatalf("Available() = %v", got)
	}
}

func TestRender(t *testing.T) {
	d := diag.Diagnostic{Code: diag.UnexpectedArgumentsCount, Args: []string{"1", "0"}}
	if got := Default().Render(d); got != "I was expecting 1 arguments, but found 0 instead." {
		t.Fatalf("en: %q", got)
	}
	ru, err := Load("RU")
	if err != nil {
		t.Fatal(err)
	}
	if got := ru.Render(d); got != "Ожидалось аргументов: 1, передано: 0." {
		t.Fatalf("ru: %q", got)
	}
	if got := ru.Severity(diag.SevError); got != "ошибка" {
		t.Fatalf("ru severity: %q", got)
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("xx"); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
}

func TestFallbackToEnglish(t *testing.T) {
	cat := &Catalog{name: "test", fallback: Default()}
	cat.doc.Diagnostics = map[string]string{}
	d := diag.Diagnostic{Code: diag.LabelDoesNotExist, Args: []string{"start"}}
	if got := cat.Render(d); got != "No label with the name 'start' exists in the same module." {
		t.Fatalf("fallback render = %q", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		tmpl string
		args []string
		want string
	}{
		{"plain", nil, "plain"},
		{"{0} and {1}", []string{"a", "b"}, "a and b"},
		{"{1}{0}{1}", []string{"a", "b"}, "bab"},
		{"missing {2}", []string{"a"}, "missing {2}"},
		{"brace {x} {", []string{"a"}, "brace {x} {"},
		{"{0}", []string{"{1}"}, "{1}"},
	}
	for _, tt := range tests {
		if got := Format(tt.tmpl, tt.args); got != tt.want {
			t.Errorf("Format(%q, %q) = %q, want %q", tt.tmpl, tt.args, got, tt.want)
		}
	}
}
