package testing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Epoch is the fixed generation time used by tests.
var Epoch = time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)

// Capability is one entry of a thing model's contents array.
type Capability struct {
	Type   string
	Name   string
	Schema any
}

func Telemetry(name string, schema any) Capability { return Capability{"Telemetry", name, schema} }
func Property(name string, schema any) Capability  { return Capability{"Property", name, schema} }
func Command(name string, schema any) Capability   { return Capability{"Command", name, schema} }

// ThingModelJSON builds a thing-model document holding caps in order.
func ThingModelJSON(t testing.TB, caps ...Capability) string {
	t.Helper()
	contents := make([]map[string]any, 0, len(caps))
	for _, c := range caps {
		contents = append(contents, map[string]any{"@type": c.Type, "name": c.Name, "schema": c.Schema})
	}
	doc := []map[string]any{{
		"@id":      "dtmi:ticos:test;1",
		"@type":    "Interface",
		"contents": contents,
	}}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal thing model: %v", err)
	}
	return string(data)
}

// WriteThingModel stores a thing-model document in dir and returns its path.
func WriteThingModel(t testing.TB, dir string, caps ...Capability) string {
	t.Helper()
	path := filepath.Join(dir, "thingmodel.json")
	if err := os.WriteFile(path, []byte(ThingModelJSON(t, caps...)), 0o644); err != nil {
		t.Fatalf("write thing model: %v", err)
	}
	return path
}

// FixedClock returns a clock that always reports ts.
func FixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

// DirEntries lists the names in dir.
func DirEntries(t testing.TB, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
