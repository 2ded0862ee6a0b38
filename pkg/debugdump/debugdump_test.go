package debugdump

import (
	"path/filepath"
	"testing"
)

func TestRecordAndReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.msgpack")

	rec, err := NewRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Pair{
		Request:  CompletionRequestRecord{ID: "1", URI: "file:///a.py", Line: 0, Character: 3, WordPrefix: "ma"},
		Response: CompletionResponseRecord{ID: "1", Items: []CompletionItemRecord{{Label: "main", InsertText: "main"}}, Count: 1},
	}
	if err := rec.Record(want); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("ReadAll() = %d pairs, want 1", len(got))
	}
	if got[0].Request.WordPrefix != "ma" || got[0].Response.Items[0].Label != "main" {
		t.Errorf("ReadAll() round-trip mismatch: %+v", got[0])
	}
}
