package clipboard

import (
	"bytes"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

type fakeRun struct {
	stdin string
	name  string
	args  []string
}

type fakeTools struct {
	available map[string]bool
	runs      []fakeRun
	err       error
}

func (f *fakeTools) run(stdin string, name string, args ...string) error {
	f.runs = append(f.runs, fakeRun{stdin: stdin, name: name, args: args})
	return f.err
}

func (f *fakeTools) lookPath(file string) (string, error) {
	if f.available[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found")
}

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Fatal("New() returned nil")
	}

	want := []Target{TargetSystem, TargetOSC52}
	if !reflect.DeepEqual(c.Targets(), want) {
		t.Errorf("Targets() = %v; want %v", c.Targets(), want)
	}
	if c.output != os.Stderr {
		t.Error("default output should be os.Stderr")
	}
}

func TestParseTargets(t *testing.T) {
	tests := []struct {
		input string
		want  []Target
	}{
		{"system", []Target{TargetSystem}},
		{"osc52, tmux", []Target{TargetOSC52, TargetTmux}},
		{" SYSTEM ,,osc52", []Target{TargetSystem, TargetOSC52}},
		{"", nil},
	}

	for _, tt := range tests {
		got, err := ParseTargets(tt.input)
		if err != nil {
			t.Errorf("ParseTargets(%q) error: %v", tt.input, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTargets(%q) = %v; want %v", tt.input, got, tt.want)
		}
	}

	if _, err := ParseTargets("system,pigeon"); err == nil {
		t.Error("ParseTargets with unknown target should fail")
	}
}

func TestOSC52(t *testing.T) {
	var buf bytes.Buffer
	c := New(WithTargets(TargetOSC52), WithOutput(&buf), WithEnv(env(nil)))

	if err := c.Copy("hello"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	// "hello" in base64 is "aGVsbG8="
	want := "\033]52;c;aGVsbG8=\007"
	if got := buf.String(); got != want {
		t.Errorf("output = %q; want %q", got, want)
	}
}

func TestOSC52InsideTmux(t *testing.T) {
	var buf bytes.Buffer
	c := New(
		WithTargets(TargetOSC52),
		WithOutput(&buf),
		WithEnv(env(map[string]string{"TMUX": "/tmp/tmux-1000/default,12345,0"})),
	)

	if err := c.Copy("hello"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	want := "\033Ptmux;\033\033]52;c;aGVsbG8=\007\033\\"
	if got := buf.String(); got != want {
		t.Errorf("output = %q; want %q", got, want)
	}
}

func TestSystemClipboard(t *testing.T) {
	tools := &fakeTools{available: map[string]bool{"xsel": true, "pbcopy": true, "clip": true}}
	c := New(WithTargets(TargetSystem), WithRunner(tools.run, tools.lookPath), WithEnv(env(nil)))

	if err := c.Copy("https://example.com/"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	if len(tools.runs) != 1 {
		t.Fatalf("runs = %d; want 1", len(tools.runs))
	}
	if tools.runs[0].stdin != "https://example.com/" {
		t.Errorf("stdin = %q; want the url", tools.runs[0].stdin)
	}
}

func TestSystemClipboardUnavailable(t *testing.T) {
	tools := &fakeTools{}
	c := New(WithTargets(TargetSystem), WithRunner(tools.run, tools.lookPath), WithEnv(env(nil)))

	err := c.Copy("text")
	if err == nil || !strings.Contains(err.Error(), "no system clipboard tool available") {
		t.Errorf("Copy error = %v; want missing tool error", err)
	}
}

func TestTmuxBuffer(t *testing.T) {
	tools := &fakeTools{}
	c := New(
		WithTargets(TargetTmux),
		WithRunner(tools.run, tools.lookPath),
		WithEnv(env(map[string]string{"TMUX": "1"})),
	)

	if err := c.Copy("text"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	want := []fakeRun{{stdin: "text", name: "tmux", args: []string{"load-buffer", "-"}}}
	if !reflect.DeepEqual(tools.runs, want) {
		t.Errorf("runs = %+v; want %+v", tools.runs, want)
	}
}

func TestTmuxOutsideSession(t *testing.T) {
	c := New(WithTargets(TargetTmux), WithEnv(env(nil)))

	err := c.Copy("text")
	if err == nil || !strings.Contains(err.Error(), "not in a tmux session") {
		t.Errorf("Copy error = %v; want tmux session error", err)
	}
}

func TestCopyContinuesAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	tools := &fakeTools{}
	c := New(
		WithTargets(TargetSystem, TargetOSC52),
		WithOutput(&buf),
		WithRunner(tools.run, tools.lookPath),
		WithEnv(env(nil)),
	)

	err := c.Copy("text")
	if err == nil {
		t.Error("Copy should report the failing system target")
	}
	if !strings.Contains(buf.String(), "\033]52;c;") {
		t.Error("OSC52 should still be written after the system target fails")
	}
}

func TestClipboardTools(t *testing.T) {
	tests := []struct {
		goos    string
		wayland bool
		first   string
	}{
		{"darwin", false, "pbcopy"},
		{"windows", false, "clip"},
		{"linux", false, "xclip"},
		{"linux", true, "wl-copy"},
	}

	for _, tt := range tests {
		tools := clipboardTools(tt.goos, tt.wayland)
		if len(tools) == 0 || tools[0][0] != tt.first {
			t.Errorf("clipboardTools(%q, %v) = %v; want %s first", tt.goos, tt.wayland, tools, tt.first)
		}
	}

	if tools := clipboardTools("plan9", false); tools != nil {
		t.Errorf("clipboardTools(plan9) = %v; want none", tools)
	}
}

func BenchmarkOSC52Copy(b *testing.B) {
	var buf bytes.Buffer
	c := New(WithTargets(TargetOSC52), WithOutput(&buf), WithEnv(env(nil)))
	text := "https://example.com/a/rather/long/path?with=query&and=more"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		c.Copy(text) // nolint: errcheck
	}
}
