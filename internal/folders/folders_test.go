package folders

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newManager(t *testing.T, dirs ...string) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	m, err := NewManager(root)
	if err != nil {
		t.Fatalf("NewManager() returned error: %v", err)
	}
	return m, root
}

func TestListSortedAndSkipsHidden(t *testing.T) {
	m, _ := newManager(t, "Rechnungen", "Bank", ".obsidian", "Auto")

	got := m.List()
	want := []string{"Auto", "Bank", "Rechnungen"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestListIgnoresPlainFiles(t *testing.T) {
	m, root := newManager(t, "Bank")
	if err := os.WriteFile(filepath.Join(root, "notizen.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.Refresh(); err != nil {
		t.Fatal(err)
	}

	if got := m.List(); !reflect.DeepEqual(got, []string{"Bank"}) {
		t.Errorf("List() = %v, want only Bank", got)
	}
}

func TestContainsIsCaseSensitive(t *testing.T) {
	m, _ := newManager(t, "Bank")

	if !m.Contains("Bank") {
		t.Error("Contains(Bank) = false, want true")
	}
	if m.Contains("bank") {
		t.Error("Contains(bank) = true, folder names are case-sensitive")
	}
}

func TestCreateNestedRefreshesSet(t *testing.T) {
	m, root := newManager(t)

	path, err := m.Create("Travel/Flights")
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}
	if path != filepath.Join(root, "Travel", "Flights") {
		t.Errorf("Create() path = %q", path)
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Errorf("nested directory was not created: %v", err)
	}
	if !m.Contains("Travel") {
		t.Error("set should contain Travel after creation")
	}
}

func TestCreateRejectsEscapingPaths(t *testing.T) {
	m, _ := newManager(t)

	for _, bad := range []string{"../outside", "..", ""} {
		if _, err := m.Create(bad); err == nil {
			t.Errorf("Create(%q) should fail", bad)
		}
	}
}
