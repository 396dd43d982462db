package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/fieldviz/internal/decompose"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDecomposeCommand(t *testing.T) {
	out, err := execute(t, "decompose", "i*(-y) + j*x")
	if err != nil {
		t.Fatalf("decompose failed: %v", err)
	}
	for _, want := range []string{"AXIS", "(-y)", "j"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDecomposeCommand_JSON(t *testing.T) {
	out, err := execute(t, "decompose", "--json", "i*x + k")
	if err != nil {
		t.Fatalf("decompose failed: %v", err)
	}
	var c decompose.Components
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("bad json %q: %v", out, err)
	}
	if c != (decompose.Components{X: "x", Y: "0", Z: "1"}) {
		t.Errorf("unexpected components %+v", c)
	}
}

func TestDecomposeCommand_Invalid(t *testing.T) {
	if _, err := execute(t, "decompose", "i^2"); err == nil {
		t.Error("expected error for exponentiated unit vector")
	}
}

func TestSampleAndList(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--data", dir, "sample", "--density", "3", "--extent", "1", "i*x + j*y")
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if !strings.Contains(out, "run: field_") {
		t.Errorf("sample output missing run id:\n%s", out)
	}

	out, err = execute(t, "--data", dir, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "i*x + j*y") {
		t.Errorf("list output missing run:\n%s", out)
	}
}

func TestSample_PresetAndNoSave(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "--data", dir, "sample", "--preset", "helix", "--density", "3", "--no-save")
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if !strings.Contains(out, "-i*y + j*x + k*0.5") {
		t.Errorf("expected helix expression:\n%s", out)
	}
	if strings.Contains(out, "run:") {
		t.Errorf("--no-save should not store a run:\n%s", out)
	}
}

func TestSample_UnknownPreset(t *testing.T) {
	if _, err := execute(t, "sample", "--preset", "nope", "--no-save"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets", "2d")
	if err != nil {
		t.Fatalf("presets failed: %v", err)
	}
	if !strings.Contains(out, "rotation") || strings.Contains(out, "helix") {
		t.Errorf("unexpected preset listing:\n%s", out)
	}
}

func TestAnimateCommand(t *testing.T) {
	out, err := execute(t, "animate", "--frames", "3", "--step", "0.5", "--density", "3", "i*t + j")
	if err != nil {
		t.Fatalf("animate failed: %v", err)
	}
	for _, want := range []string{"FRAME", "1.000", "peak", "coverage"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
