package machine

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/speakeasy-api/polycalc"
)

// run feeds input to a fresh machine and returns stdout, stderr and the
// machine for further inspection.
func run(t *testing.T, input string) (string, string, *Machine) {
	t.Helper()
	var out, diag bytes.Buffer
	m := New(&out, &diag, DefaultOptions())
	if _, err := m.Run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String(), diag.String(), m
}

func stackStrings(m *Machine) []string {
	var out []string
	for _, p := range m.Stack() {
		out = append(out, p.String())
	}
	return out
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOut   string
		wantDiag  string
		wantStack []string
	}{
		{
			name:      "print_canonical_form",
			input:     "(1,2)+(3,0)\nPRINT\n",
			wantOut:   "(3,0)+(1,2)\n",
			wantStack: []string{"(3,0)+(1,2)"},
		},
		{
			name:      "zero_is_zero_deg",
			input:     "ZERO\nIS_ZERO\nDEG\n",
			wantOut:   "1\n-1\n",
			wantStack: []string{"0"},
		},
		{
			name:      "at_consumes_input",
			input:     "(1,1)\nAT 5\nPRINT\n",
			wantOut:   "5\n",
			wantStack: []string{"5"},
		},
		{
			name:     "add_on_empty_stack",
			input:    "ADD\n",
			wantDiag: "ERROR 1 STACK UNDERFLOW\n",
		},
		{
			name:     "bare_coeff_after_plus",
			input:    "(1,2)+5\n",
			wantDiag: "ERROR 1 WRONG POLY\n",
		},
		{
			name:      "compose_underflow_restores",
			input:     "(1,1)\n(1,2)\nCOMPOSE 2\nPRINT\n",
			wantOut:   "(1,2)\n",
			wantDiag:  "ERROR 3 STACK UNDERFLOW\n",
			wantStack: []string{"(1,1)", "(1,2)"},
		},
		{
			name:      "compose_single",
			input:     "(1,0)+(1,1)\n(1,2)\nCOMPOSE 1\nPRINT\n",
			wantOut:   "(1,0)+(2,1)+(1,2)\n",
			wantStack: []string{"(1,0)+(2,1)+(1,2)"},
		},
		{
			name:      "compose_push_order",
			input:     "2\n3\n((1,2),1)\nCOMPOSE 2\nPRINT\n",
			wantOut:   "18\n",
			wantStack: []string{"18"},
		},
		{
			name:      "sub_deeper_minus_top",
			input:     "5\n3\nSUB\nPRINT\n",
			wantOut:   "2\n",
			wantStack: []string{"2"},
		},
		{
			name:      "add_mul",
			input:     "(1,1)\n(2,0)\nADD\nCLONE\nMUL\nPRINT\n",
			wantOut:   "(4,0)+(4,1)+(1,2)\n",
			wantStack: []string{"(4,0)+(4,1)+(1,2)"},
		},
		{
			name:      "neg_in_place",
			input:     "(1,1)\nNEG\nPRINT\n",
			wantOut:   "(-1,1)\n",
			wantStack: []string{"(-1,1)"},
		},
		{
			name:      "is_eq_keeps_operands",
			input:     "(1,1)\n(1,1)\nIS_EQ\n2\nIS_EQ\n",
			wantOut:   "1\n0\n",
			wantStack: []string{"(1,1)", "(1,1)", "2"},
		},
		{
			name:      "is_coeff",
			input:     "4\nIS_COEFF\n(1,1)\nIS_COEFF\nIS_ZERO\n",
			wantOut:   "1\n0\n0\n",
			wantStack: []string{"4", "(1,1)"},
		},
		{
			name:      "deg_by",
			input:     "(1,2)+((1,3),1)\nDEG_BY 0\nDEG_BY 1\nDEG_BY 2\nDEG\n",
			wantOut:   "2\n3\n0\n4\n",
			wantStack: []string{"((1,3),1)+(1,2)"},
		},
		{
			name:      "pop",
			input:     "1\n2\nPOP\nPOP\nPOP\n",
			wantDiag:  "ERROR 5 STACK UNDERFLOW\n",
			wantStack: nil,
		},
		{
			name:      "line_numbers_count_comments_and_blanks",
			input:     "# comment\n\nPRINT\n",
			wantDiag:  "ERROR 3 STACK UNDERFLOW\n",
			wantStack: nil,
		},
		{
			name:      "last_line_without_newline",
			input:     "7\nPRINT",
			wantOut:   "7\n",
			wantStack: []string{"7"},
		},
		{
			name:      "binary_underflow_keeps_single_operand",
			input:     "(1,1)\nMUL\nSUB\nIS_EQ\nPRINT\n",
			wantOut:   "(1,1)\n",
			wantDiag:  "ERROR 2 STACK UNDERFLOW\nERROR 3 STACK UNDERFLOW\nERROR 4 STACK UNDERFLOW\n",
			wantStack: []string{"(1,1)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, diag, m := run(t, tt.input)
			if diff := cmp.Diff(tt.wantOut, out); diff != "" {
				t.Errorf("stdout mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantDiag, diag); diff != "" {
				t.Errorf("stderr mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantStack, stackStrings(m)); diff != "" {
				t.Errorf("stack mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		line string
		want Kind
	}{
		{"(1,2", WrongPoly},
		{"-", WrongPoly},
		{" ZERO", WrongPoly},
		{"\tPRINT", WrongPoly},
		{"!x", WrongPoly},
		{"FOO", WrongCommand},
		{"zero", WrongCommand},
		{"ZERO ", WrongCommand},
		{"ZEROX", WrongCommand},
		{"ZERO\r", WrongCommand},
		{"PRINT 1", WrongCommand},
		{"DEG_BYX 1", WrongCommand},
		{"DEG_BY", DegByWrongVariable},
		{"DEG_BY ", DegByWrongVariable},
		{"DEG_BY -1", DegByWrongVariable},
		{"DEG_BY +1", DegByWrongVariable},
		{"DEG_BY 1 ", DegByWrongVariable},
		{"DEG_BY\t1", DegByWrongVariable},
		{"DEG_BY  1", DegByWrongVariable},
		{"DEG_BY 18446744073709551616", DegByWrongVariable},
		{"AT", AtWrongValue},
		{"AT x", AtWrongValue},
		{"AT -", AtWrongValue},
		{"AT --1", AtWrongValue},
		{"AT 1 ", AtWrongValue},
		{"AT 9223372036854775808", AtWrongValue},
		{"AT -9223372036854775809", AtWrongValue},
		{"COMPOSE", ComposeWrongParameter},
		{"COMPOSE 0", ComposeWrongParameter},
		{"COMPOSE -1", ComposeWrongParameter},
		{"COMPOSE 1x", ComposeWrongParameter},
		{"COMPOSE 18446744073709551616", ComposeWrongParameter},
		{"DEG_BY 18446744073709551615", StackUnderflow},
		{"AT -9223372036854775808", StackUnderflow},
		{"COMPOSE 18446744073709551615", StackUnderflow},
		{"AT 5\x00", AtWrongValue},
		{"DEG_BY\t\x00", DegByWrongVariable},
		{"COMPOSE 1\x00", ComposeWrongParameter},
		{"DEG_BY\x00", WrongCommand},
		{"PRINT\x00", WrongCommand},
		{"(1,1)\x00", WrongPoly},
		{"#\x00", WrongPoly},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			var out, diag bytes.Buffer
			m := New(&out, &diag, DefaultOptions())
			err := m.ExecLine(tt.line)
			var merr *Error
			if !errors.As(err, &merr) {
				t.Fatalf("ExecLine(%q) = %v, want *Error", tt.line, err)
			}
			if merr.Kind != tt.want {
				t.Errorf("ExecLine(%q) kind = %s, want %s", tt.line, merr.Kind, tt.want)
			}
			if got, want := diag.String(), "ERROR 1 "+tt.want.String()+"\n"; got != want {
				t.Errorf("diagnostic = %q, want %q", got, want)
			}
			if out.Len() != 0 || m.Depth() != 0 {
				t.Errorf("rejected line produced output %q or depth %d", out.String(), m.Depth())
			}
		})
	}
}

func TestSyntaxErrorIsWrapped(t *testing.T) {
	var out, diag bytes.Buffer
	m := New(&out, &diag, DefaultOptions())
	err := m.ExecLine("(1,2)+5")
	var se *polycalc.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected a wrapped *polycalc.SyntaxError, got %v", err)
	}
	if se.Offset != 6 {
		t.Errorf("Offset = %d, want 6", se.Offset)
	}
}

func TestVerboseDiagnostics(t *testing.T) {
	var out, diag bytes.Buffer
	opts := DefaultOptions()
	opts.Verbose = true
	m := New(&out, &diag, opts)
	m.ExecLine("(1,2)+5")

	want := "ERROR 1 WRONG POLY\n" +
		"  (1,2)+5\n" +
		"        ^ expected '(' after '+', found '5'\n" +
		"  How to fix: every term after '+' must be a parenthesized pair, e.g. \"(1,2)+(3,0)\".\n"
	if diff := cmp.Diff(want, diag.String()); diff != "" {
		t.Errorf("verbose diagnostic mismatch (-want +got):\n%s", diff)
	}
}

func TestColorDiagnostics(t *testing.T) {
	var out, diag bytes.Buffer
	opts := DefaultOptions()
	opts.Color = true
	m := New(&out, &diag, opts)
	m.ExecLine("POP")
	if got, want := diag.String(), "\x1b[31mERROR 1 STACK UNDERFLOW\x1b[0m\n"; got != want {
		t.Errorf("diagnostic = %q, want %q", got, want)
	}
}

func TestRunResult(t *testing.T) {
	var out, diag bytes.Buffer
	m := New(&out, &diag, DefaultOptions())
	res, err := m.Run(context.Background(), strings.NewReader("1\nFOO\n2\nADD\nPOP\nPOP\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := &Result{Lines: 6, Errors: 2, Depth: 0}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, diag bytes.Buffer
	m := New(&out, &diag, DefaultOptions())
	if _, err := m.Run(ctx, strings.NewReader("ZERO\n")); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if m.Depth() != 0 {
		t.Errorf("cancelled run executed input")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRunWriteError(t *testing.T) {
	var diag bytes.Buffer
	m := New(failingWriter{}, &diag, DefaultOptions())
	_, err := m.Run(context.Background(), strings.NewReader("ZERO\nPRINT\nPRINT\n"))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Run error = %v, want write failure", err)
	}
	if m.Line() != 2 {
		t.Errorf("Run stopped after line %d, want 2", m.Line())
	}
}

func TestClose(t *testing.T) {
	_, _, m := run(t, "1\n2\n3\n")
	m.Close()
	if m.Depth() != 0 {
		t.Errorf("Close left %d elements", m.Depth())
	}
}

func TestDebugLogging(t *testing.T) {
	var logBuf bytes.Buffer
	opts := DefaultOptions()
	opts.LogLevel = "debug"
	opts.LogTimeFormat = ""
	opts.LogWriter = &logBuf

	var out, diag bytes.Buffer
	m := New(&out, &diag, opts)
	if _, err := m.Run(context.Background(), strings.NewReader("ZERO\nFOO\n")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	logs := logBuf.String()
	for _, want := range []string{
		"[INFO] Starting run\n",
		"[DEBUG] Executed instruction depth=1 line=1 op=ZERO\n",
		"[INFO] Rejected line kind=WRONG COMMAND line=2\n",
		"[INFO] Finished run depth=1 errors=1 lines=2\n",
	} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %q:\n%s", want, logs)
		}
	}
	if diag.String() != "ERROR 2 WRONG COMMAND\n" {
		t.Errorf("logging changed the diagnostic stream: %q", diag.String())
	}
}
