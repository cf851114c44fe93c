package draft

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	c := NewFileCache(t.TempDir(), time.Millisecond)

	saved := c.Save("profile", map[string]any{"nom": "Dupont"})
	if saved.IsZero() {
		t.Fatal("expected non-zero save time")
	}

	data, savedAt, ok := c.Load("profile")
	if !ok {
		t.Fatal("expected draft to load")
	}
	if savedAt == nil || savedAt.IsZero() {
		t.Fatal("expected savedAt timestamp")
	}
	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["nom"] != "Dupont" {
		t.Fatalf("expected nom=Dupont, got %v", got)
	}
}

func TestLoadSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	c := NewFileCache(dir, time.Millisecond)
	c.Save("enseignements", []int{1, 2, 3})
	c.Flush()

	fresh := NewFileCache(dir, time.Millisecond)
	data, _, ok := fresh.Load("enseignements")
	if !ok {
		t.Fatal("expected draft to survive a restart")
	}
	var items []int
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
}

func TestWriteErrorsAreSwallowed(t *testing.T) {
	// Unwritable directory: persistence fails but in-memory state stays valid.
	c := NewFileCache(filepath.Join(string(os.PathSeparator), "dev", "null", "nope"), time.Millisecond)
	c.Save("profile", map[string]any{"nom": "Martin"})
	c.Flush()

	if _, _, ok := c.Load("profile"); !ok {
		t.Fatal("in-memory draft should remain readable after a failed write")
	}
}

func TestClearAllRemovesEveryPrefixedKey(t *testing.T) {
	dir := t.TempDir()
	c := NewFileCache(dir, time.Millisecond)
	for _, key := range []string{"profile", "enseignements", "pfes", "activites_enseignement", "activites_recherche"} {
		c.Save(key, map[string]any{"x": 1})
	}
	c.Flush()

	// An unrelated file in the same directory must survive.
	other := filepath.Join(dir, "unrelated.json")
	if err := os.WriteFile(other, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write unrelated: %v", err)
	}

	c.ClearAll()

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(files) != 1 || files[0].Name() != "unrelated.json" {
		t.Fatalf("expected only unrelated.json to remain, got %v", files)
	}
	if _, _, ok := c.Load("profile"); ok {
		t.Fatal("expected in-memory drafts cleared as well")
	}
}

func TestMergeRemoteWins(t *testing.T) {
	local := map[string]any{"nom": "Dupont"}
	remote := map[string]any{"nom": "Martin", "prenom": "Jean"}

	merged := Merge(local, remote)
	want := map[string]any{"nom": "Martin", "prenom": "Jean"}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("expected %v, got %v", want, merged)
	}
}

func TestMergeLocalFillsGaps(t *testing.T) {
	local := map[string]any{"telephone": "0600000000"}
	remote := map[string]any{"nom": "Martin", "telephone": nil}

	merged := Merge(local, remote)
	if merged["telephone"] != "0600000000" {
		t.Fatalf("expected local value to fill the nil remote field, got %v", merged["telephone"])
	}
	if merged["nom"] != "Martin" {
		t.Fatalf("expected remote nom, got %v", merged["nom"])
	}
}
