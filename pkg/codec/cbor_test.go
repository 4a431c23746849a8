package codec

import (
	"bytes"
	"testing"
)

func TestMarshalDeterministic(t *testing.T) {
	a := map[string]int{"piles": 1, "deck": 2, "cap_beam": 3, "bearing": 4}
	b := map[string]int{"bearing": 4, "cap_beam": 3, "deck": 2, "piles": 1}

	da, err := Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 10 {
		db, err := Marshal(b)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(da, db) {
			t.Fatal("equal maps encoded differently")
		}
	}
}

func TestUnmarshalAnyUsesStringMaps(t *testing.T) {
	data, err := Marshal(map[string]any{"row": map[string]any{"id": "r1"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out any
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("decoded %T, want map[string]any", out)
	}
	if _, ok := m["row"].(map[string]any); !ok {
		t.Errorf("nested value is %T, want map[string]any", m["row"])
	}
}
