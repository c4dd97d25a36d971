package prettyprinter

import (
	"errors"
	"testing"

	"github.com/funvibe/gl/internal/diagnostics"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"comment only", "// nothing here\n", ""},
		{"spacing", "var   x=1+2*3", "var x = 1 + 2 * 3\n"},
		{"const", "const  k =  'v'", "const k = \"v\"\n"},
		{"con keyword", "con k = 1", "const k = 1\n"},
		{"needed parens", "(1+2)*3", "(1 + 2) * 3\n"},
		{"right operand parens", "1-(2-3)", "1 - (2 - 3)\n"},
		{"left associative", "(1-2)-3", "1 - 2 - 3\n"},
		{"redundant parens", "((a))", "a\n"},
		{"tighter right operand", "a+(b*c)", "a + b * c\n"},
		{"unary group", "-(a+b)", "-(a + b)\n"},
		{"unary postfix", "-a.b", "-a.b\n"},
		{"comparison left", "(a<b)==true", "a < b == true\n"},
		{"comparison right", "a==(b<c)", "a == (b < c)\n"},
		{"postfix chain", "(a.b)(c)[0]", "a.b(c)[0]\n"},
		{"string index", "o [ \"k\" ]", "o[\"k\"]\n"},
		{"double quoted", `'plain'`, "\"plain\"\n"},
		{"keeps apostrophe", `"it's"`, "\"it's\"\n"},
		{"single quotes for double quote", `'say "hi"'`, "'say \"hi\"'\n"},
		{"array trailing comma", "var a = [1,2,]", "var a = [1, 2]\n"},
		{"object statement", `({ "a b": 1, c: [1,2,], if: null, })`, "({\"a b\": 1, c: [1, 2], if: null})\n"},
		{"empty object", "var o={}", "var o = {}\n"},
		{"assign member", "o . x = 1", "o.x = 1\n"},
		{"assign index", "a[0]=b", "a[0] = b\n"},
		{"function", "function add(a,b){return a+b}", "function add(a, b) {\n    return a + b\n}\n"},
		{"anonymous function", "var f=function(){}", "var f = function() {}\n"},
		{"bare return", "function f() { return }", "function f() {\n    return\n}\n"},
		{"block", "{ var a = 1 }", "{\n    var a = 1\n}\n"},
		{"if chain", "if(x){a=1}else if(y){}else{b=2}", "if (x) {\n    a = 1\n} else if (y) {} else {\n    b = 2\n}\n"},
		{"nested", "function f(){if(a){return [1,{k:2}]}}", "function f() {\n    if (a) {\n        return [1, {k: 2}]\n    }\n}\n"},
		{"statements one per line", "a b   c", "a\nb\nc\n"},
		{"drops comments", "x // trailing\ny", "x\ny\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.input)
			if err != nil {
				t.Fatalf("Format(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Format(%q):\n got: %q\nwant: %q", tt.input, got, tt.expected)
			}

			again, err := Format(got)
			if err != nil {
				t.Fatalf("formatted output does not parse: %v\n%s", err, got)
			}
			if again != got {
				t.Errorf("formatting is not idempotent:\nfirst:  %q\nsecond: %q", got, again)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostics.ErrorCode
	}{
		{"var = 1", diagnostics.ErrP001},
		{"x += 1", diagnostics.ErrP002},
		{"a # b", diagnostics.ErrL001},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, err := Format(tt.input)
			if err == nil {
				t.Fatalf("Format(%q) = %q, expected an error", tt.input, out)
			}
			var diag *diagnostics.DiagnosticError
			if !errors.As(err, &diag) {
				t.Fatalf("error %v is not a diagnostic", err)
			}
			if diag.Code != tt.code {
				t.Errorf("code = %s, want %s", diag.Code, tt.code)
			}
			if out != "" {
				t.Errorf("output on failure = %q, want empty", out)
			}
		})
	}
}

func TestUnaryLiteralRoundTrip(t *testing.T) {
	got, err := Format("var x = - 1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "var x = -1\n" {
		t.Errorf("unary literal printed as %q", got)
	}
}
