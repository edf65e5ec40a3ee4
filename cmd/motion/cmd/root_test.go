package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDoc = `
animations:
  slide:
    target: {x: 100}
    timing: {curve: linear}
    duration: 40ms
  card:
    target: {opacity: 0.5}
    duration: 20ms
sequences:
  intro: {steps: [{animation: slide}, {animation: card, overlap: 1}]}
groups:
  both: [slide, card]
transitions:
  present: {context: present, animations: [card]}
`

// run executes the CLI with output captured and the document flag reset.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	documentPath = ""
	t.Cleanup(func() {
		stdout = prev
		documentPath = ""
	})
	err := Execute(args)
	return buf.String(), err
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motion.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecuteHelpAndVersion(t *testing.T) {
	out, err := run(t)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, name := range []string{"play", "scrub", "curves", "validate"} {
		if !strings.Contains(out, name) {
			t.Errorf("help output missing command %q", name)
		}
	}

	out, err = run(t, "--version")
	if err != nil {
		t.Fatalf("Execute(--version) error = %v", err)
	}
	if !strings.HasPrefix(out, "motion version "+Version) {
		t.Errorf("version output = %q", out)
	}

	out, err = run(t, "scrub", "--help")
	if err != nil {
		t.Fatalf("Execute(scrub --help) error = %v", err)
	}
	if !strings.Contains(out, "motion scrub <animation>") {
		t.Errorf("scrub help = %q", out)
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	if _, err := run(t, "wobble"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestCurves(t *testing.T) {
	out, err := run(t, "curves", "linear", "ease-out")
	if err != nil {
		t.Fatalf("curves error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), out)
	}
	if want := "linear    0.000 0.250 0.500 0.750 1.000"; lines[0] != want {
		t.Errorf("linear = %q, want %q", lines[0], want)
	}
	if !strings.HasPrefix(lines[1], "ease-out  0.000 ") || !strings.HasSuffix(lines[1], " 1.000") {
		t.Errorf("ease-out = %q", lines[1])
	}

	out, err = run(t, "curves", "--samples", "2", "linear")
	if err != nil {
		t.Fatalf("curves --samples error = %v", err)
	}
	if want := "linear  0.000 0.500 1.000\n"; out != want {
		t.Errorf("curves --samples 2 = %q, want %q", out, want)
	}

	if _, err := run(t, "curves", "wobble"); err == nil {
		t.Error("expected error for unknown curve")
	}
	if _, err := run(t, "curves", "--samples", "0"); err == nil {
		t.Error("expected error for zero samples")
	}
}

func TestValidate(t *testing.T) {
	path := writeDoc(t, testDoc)
	out, err := run(t, "validate", path)
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if want := "2 animations, 1 sequences, 1 groups, 1 transitions: ok\n"; out != want {
		t.Errorf("validate = %q, want %q", out, want)
	}

	bad := writeDoc(t, "animations:\n  a: {target: {wobble: 1}}\n")
	if _, err := run(t, "validate", bad); err == nil {
		t.Error("expected error for unknown property")
	}
}

func TestScrub(t *testing.T) {
	path := writeDoc(t, testDoc)
	out, err := run(t, "--file", path, "scrub", "slide", "--steps", "4")
	if err != nil {
		t.Fatalf("scrub error = %v", err)
	}
	want := strings.Join([]string{
		"0.000  x=0",
		"0.250  x=25",
		"0.500  x=50",
		"0.750  x=75",
		"1.000  x=100",
		"",
	}, "\n")
	if out != want {
		t.Errorf("scrub output = %q, want %q", out, want)
	}

	if _, err := run(t, "--file="+path, "scrub", "missing"); err == nil {
		t.Error("expected error for unknown animation")
	}
}

func TestParseScrubArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    scrubOptions
		wantErr bool
	}{
		{"defaults", []string{"card"}, scrubOptions{name: "card", steps: 4}, false},
		{"steps", []string{"card", "--steps", "10"}, scrubOptions{name: "card", steps: 10}, false},
		{"drag", []string{"--drag", "120", "card"}, scrubOptions{name: "card", steps: 4, drag: 120}, false},
		{"no name", []string{"--steps", "2"}, scrubOptions{}, true},
		{"zero steps", []string{"card", "--steps", "0"}, scrubOptions{}, true},
		{"missing value", []string{"card", "--drag"}, scrubOptions{}, true},
		{"two names", []string{"card", "fade"}, scrubOptions{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScrubArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseScrubArgs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseScrubArgs(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestPlay(t *testing.T) {
	path := writeDoc(t, testDoc)
	tests := []struct {
		name string
		want []string
	}{
		{"slide", []string{"slide  x=100"}},
		{"intro", []string{"card  opacity=0.5", "slide  x=100"}},
		{"both", []string{"card  opacity=0.5", "slide  x=100"}},
		{"present", []string{"card  opacity=0.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "--file", path, "play", tt.name, "--no-sinks")
			if err != nil {
				t.Fatalf("play %s error = %v", tt.name, err)
			}
			if got := strings.Split(strings.TrimSpace(out), "\n"); strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("play %s = %q, want %q", tt.name, got, tt.want)
			}
		})
	}

	if _, err := run(t, "--file", path, "play", "missing"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestParsePlayArgs(t *testing.T) {
	opts, err := parsePlayArgs([]string{"card", "--term", "--no-store"})
	if err != nil {
		t.Fatalf("parsePlayArgs error = %v", err)
	}
	if want := (playOptions{name: "card", term: true, noStore: true}); opts != want {
		t.Errorf("parsePlayArgs = %+v, want %+v", opts, want)
	}
	if _, err := parsePlayArgs([]string{"--fast"}); err == nil {
		t.Error("expected error for unknown flag")
	}
	if _, err := parsePlayArgs(nil); err == nil {
		t.Error("expected error without a name")
	}
}
