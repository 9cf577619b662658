package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixtures(t *testing.T, listJSON, accepted string) (dir, acceptedPath string) {
	t.Helper()
	dir = t.TempDir()
	listDir := filepath.Join(dir, "wordlists")
	if err := os.MkdirAll(listDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(listDir, "classic.json"), []byte(listJSON), 0644); err != nil {
		t.Fatal(err)
	}
	acceptedPath = filepath.Join(dir, "accepted_words.txt")
	if err := os.WriteFile(acceptedPath, []byte(accepted), 0644); err != nil {
		t.Fatal(err)
	}
	return listDir, acceptedPath
}

func TestLoad(t *testing.T) {
	listJSON := `{"words":[
		{"word":"crane","hint":"a bird"},
		{"word":"allow","hint":"permit"},
		{"word":"tooshort","hint":"skipped"}
	]}`
	listDir, acceptedPath := writeFixtures(t, listJSON, "trace\nroomy\n\n")

	cat, err := Load(listDir, acceptedPath, "classic")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	list, ok := cat.List("classic")
	if !ok {
		t.Fatal("classic list not found")
	}
	if list.Len() != 2 {
		t.Errorf("Len = %d, want 2 (invalid-length word skipped)", list.Len())
	}
	if !list.Contains("CRANE") {
		t.Error("CRANE should be a member after uppercasing")
	}
	if list.Contains("crane") {
		t.Error("membership is on canonical uppercase form only")
	}
	if list.Hint("CRANE") != "a bird" {
		t.Errorf("Hint = %q, want %q", list.Hint("CRANE"), "a bird")
	}
	if list.Hint("") != "" {
		t.Error("empty word should yield empty hint")
	}
}

func TestAccepts(t *testing.T) {
	listJSON := `{"words":[{"word":"crane","hint":"a bird"}]}`
	listDir, acceptedPath := writeFixtures(t, listJSON, "trace\n")

	cat, err := Load(listDir, acceptedPath, "classic")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	list := cat.DefaultList()

	if !cat.Accepts(list, "CRANE") {
		t.Error("list member should be accepted")
	}
	if !cat.Accepts(list, "TRACE") {
		t.Error("accepted-set word should be accepted")
	}
	if cat.Accepts(list, "ZZZZZ") {
		t.Error("unknown word should not be accepted")
	}
}

func TestLoadMissingDefaultList(t *testing.T) {
	listJSON := `{"words":[{"word":"crane","hint":"a bird"}]}`
	listDir, acceptedPath := writeFixtures(t, listJSON, "")

	if _, err := Load(listDir, acceptedPath, "nonexistent"); err == nil {
		t.Error("expected error for missing default list")
	}
}

func TestLoadMissingAcceptedFileDegrades(t *testing.T) {
	listJSON := `{"words":[{"word":"crane","hint":"a bird"}]}`
	listDir, _ := writeFixtures(t, listJSON, "")

	cat, err := Load(listDir, filepath.Join(listDir, "no-such-file.txt"), "classic")
	if err != nil {
		t.Fatalf("Load should degrade on missing accepted file, got: %v", err)
	}
	if cat.AcceptedCount() != 0 {
		t.Errorf("AcceptedCount = %d, want 0", cat.AcceptedCount())
	}
	if !cat.Accepts(cat.DefaultList(), "CRANE") {
		t.Error("list members must remain acceptable without an accepted file")
	}
}

func TestLoadEmptyDir(t *testing.T) {
	if _, err := Load(t.TempDir(), "accepted.txt", "classic"); err == nil {
		t.Error("expected error for directory with no word-lists")
	}
}
