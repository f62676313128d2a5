package msgcat

import (
    "errors"
    "os"
    "path/filepath"
    "strings"
    "testing"
)

func TestEmbeddedDefaults(t *testing.T) {
    c, err := New("")
    if err != nil { t.Fatalf("New: %v", err) }
    got, err := c.Render("error.room_not_found", map[string]any{"RoomID": "abc123"})
    if err != nil { t.Fatalf("Render: %v", err) }
    if got != "Room abc123 does not exist." { t.Fatalf("got %q", got) }
    if !c.Has("error.placement.edge_contact") { t.Fatalf("nested key not flattened") }
}

func TestRenderMissingData(t *testing.T) {
    c, err := New("")
    if err != nil { t.Fatalf("New: %v", err) }
    if _, err := c.Render("error.room_full", map[string]any{}); err == nil {
        t.Fatalf("expected error for missing template field")
    }
    if got := c.Text("no.such.key", nil, "fallback"); got != "fallback" { t.Fatalf("got %q", got) }
    if _, err := c.Render("no.such.key", nil); !errors.Is(err, ErrUnknownKey) { t.Fatalf("expected ErrUnknownKey, got %v", err) }
    var nilCat *Catalog
    if got := nilCat.Text("error.internal", nil, "fb"); got != "fb" { t.Fatalf("nil catalog text = %q", got) }
}

func TestOverrideDir(t *testing.T) {
    dir := t.TempDir()
    if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("error:\n  not_your_turn: \"Wait for {{.Name}}.\"\n"), 0o644); err != nil {
        t.Fatalf("write: %v", err)
    }
    c, err := New(dir)
    if err != nil { t.Fatalf("New: %v", err) }
    got := c.Text("error.not_your_turn", map[string]any{"Name": "bob"}, "")
    if got != "Wait for bob." { t.Fatalf("override not applied: %q", got) }
}

func TestOverrideDuplicateKeys(t *testing.T) {
    dir := t.TempDir()
    body := []byte("error:\n  game_over: \"x\"\n")
    _ = os.WriteFile(filepath.Join(dir, "a.yaml"), body, 0o644)
    _ = os.WriteFile(filepath.Join(dir, "b.yml"), body, 0o644)
    _, err := New(dir)
    if err == nil || !strings.Contains(err.Error(), "duplicate override key") {
        t.Fatalf("expected duplicate key error, got %v", err)
    }
}

func TestOverrideRejectsNonStringLeaf(t *testing.T) {
    dir := t.TempDir()
    _ = os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("error:\n  room_full: 3\n"), 0o644)
    _, err := New(dir)
    if err == nil || !strings.Contains(err.Error(), "error.room_full must be a string") {
        t.Fatalf("expected non-string error, got %v", err)
    }
}

func TestOverrideIgnoresOtherFiles(t *testing.T) {
    dir := t.TempDir()
    _ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not: yaml: at all"), 0o644)
    _ = os.WriteFile(filepath.Join(dir, "empty.yaml"), nil, 0o644)
    c, err := New(dir)
    if err != nil { t.Fatalf("New: %v", err) }
    if got := c.Text("error.game_over", nil, ""); got != "The game is over." { t.Fatalf("got %q", got) }
}
