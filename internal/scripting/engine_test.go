package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newEngine(t *testing.T, script string) *Engine {
	t.Helper()
	dir := t.TempDir()
	if script != "" {
		if err := os.WriteFile(filepath.Join(dir, "scenario.lua"), []byte(script), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestSpawnProbabilityHook(t *testing.T) {
	e := newEngine(t, `
function spawn_probability(resolution)
    return resolution / 2
end
`)
	got, ok := e.SpawnProbability(512)
	if !ok {
		t.Fatal("hook not found")
	}
	if got != 256 {
		t.Fatalf("probability = %d, want 256", got)
	}
}

func TestSpawnProbabilityClampedToResolution(t *testing.T) {
	e := newEngine(t, `
function spawn_probability(resolution)
    return resolution * 10
end
`)
	got, ok := e.SpawnProbability(512)
	if !ok || got != 512 {
		t.Fatalf("probability = %d ok=%v, want 512 true", got, ok)
	}

	e2 := newEngine(t, `
function spawn_probability(resolution)
    return -5
end
`)
	got, ok = e2.SpawnProbability(512)
	if !ok || got != 0 {
		t.Fatalf("probability = %d ok=%v, want 0 true", got, ok)
	}
}

func TestSpawnProbabilityMissingHook(t *testing.T) {
	e := newEngine(t, "")
	if _, ok := e.SpawnProbability(512); ok {
		t.Fatal("hook reported present in an empty scenario")
	}
}

func TestSpawnProbabilityNonNumberReturn(t *testing.T) {
	e := newEngine(t, `
function spawn_probability(resolution)
    return "lots"
end
`)
	if _, ok := e.SpawnProbability(512); ok {
		t.Fatal("non-number hook result accepted")
	}
}

func TestMissingScriptDirIsNotAnError(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine on a missing dir: %v", err)
	}
	e.Close()
}

func TestBrokenScriptFailsLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("function ("), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("syntax error not reported")
	}
}
