package mapping

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testMappingYAML = `
format_id: "test-yaml"
version: "1.0.0"
description: "Key/value test mapping"
namespace: "https://example.org/test#"
fields:
  - field: "title"
    property: "title"
    match: "exact"
    kind: "string"
  - field: "rating"
    property: "averageRating"
    match: "related"
    kind: "decimal"
    related: "userRating"
`

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()
	if registry == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if registry.Count() != 0 {
		t.Errorf("Count() = %d, want 0", registry.Count())
	}
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()

	mapping := validMapping()

	// Register should succeed
	if err := registry.Register(mapping); err != nil {
		t.Errorf("Register() error = %v", err)
	}

	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1", registry.Count())
	}

	// Registering nil should fail
	if err := registry.Register(nil); err == nil {
		t.Error("Register(nil) should return error")
	}

	// Registering same version should fail
	if err := registry.Register(mapping); err == nil {
		t.Error("Register() duplicate should return error")
	}

	// Registering different version should succeed
	updated := validMapping()
	updated.Version = "2.0.0"
	if err := registry.Register(updated); err != nil {
		t.Errorf("Register() new version error = %v", err)
	}
}

func TestRegistryRegisterInvalidMapping(t *testing.T) {
	registry := NewRegistry()

	invalid := &FormatMapping{FormatID: "invalid"}
	if err := registry.Register(invalid); err == nil {
		t.Error("Register() invalid mapping should return error")
	}
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(validMapping()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Unregister should succeed
	if err := registry.Unregister("test-format"); err != nil {
		t.Errorf("Unregister() error = %v", err)
	}

	if registry.Count() != 0 {
		t.Errorf("Count() = %d, want 0", registry.Count())
	}

	// Unregister non-existent should fail
	if err := registry.Unregister("non-existent"); err == nil {
		t.Error("Unregister() non-existent should return error")
	}
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(validMapping()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	mapping, ok := registry.Get("test-format")
	if !ok {
		t.Fatal("Get() should find mapping")
	}
	if mapping.Namespace != "https://example.org/test#" {
		t.Errorf("Namespace = %q, want %q", mapping.Namespace, "https://example.org/test#")
	}

	if _, ok := registry.Get("non-existent"); ok {
		t.Error("Get() should not find non-existent mapping")
	}
}

func TestRegistryList(t *testing.T) {
	registry := NewRegistry()

	first := validMapping()
	second := validMapping()
	second.FormatID = "other-format"

	for _, mapping := range []*FormatMapping{first, second} {
		if err := registry.Register(mapping); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}

	list := registry.List()
	if len(list) != 2 {
		t.Errorf("List() len = %d, want 2", len(list))
	}
}

func TestRegistryLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	mappingFile := filepath.Join(tmpDir, "test-yaml.yaml")

	if err := os.WriteFile(mappingFile, []byte(testMappingYAML), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	registry := NewRegistry()
	if err := registry.LoadFile(mappingFile); err != nil {
		t.Errorf("LoadFile() error = %v", err)
	}

	mapping, ok := registry.Get("test-yaml")
	if !ok {
		t.Fatal("Get() should find loaded mapping")
	}
	if len(mapping.Fields) != 2 {
		t.Errorf("Fields len = %d, want 2", len(mapping.Fields))
	}

	field, ok := mapping.Lookup("rating")
	if !ok {
		t.Fatal("Lookup() should find rating field")
	}
	if field.Related != "userRating" {
		t.Errorf("Related = %q, want %q", field.Related, "userRating")
	}
}

func TestRegistryLoadFileSameVersion(t *testing.T) {
	tmpDir := t.TempDir()
	mappingFile := filepath.Join(tmpDir, "test-yaml.yaml")

	if err := os.WriteFile(mappingFile, []byte(testMappingYAML), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	registry := NewRegistry()
	if err := registry.LoadFile(mappingFile); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	// Re-reading the same file replaces the mapping even when the version
	// is unchanged
	if err := registry.LoadFile(mappingFile); err != nil {
		t.Errorf("LoadFile() re-read error = %v", err)
	}
	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1", registry.Count())
	}
}

func TestRegistryLoadDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	files := map[string]string{
		"mapping-a.yaml": `
format_id: "mapping-a"
version: "1.0.0"
namespace: "https://example.org/a#"
fields:
  - field: "title"
    property: "title"
    match: "exact"
    kind: "string"
`,
		"mapping-b.yml": `
format_id: "mapping-b"
version: "1.0.0"
namespace: "https://example.org/b#"
fields:
  - field: "date"
    property: "creationDate"
    match: "exact"
    kind: "date"
`,
		"not-a-mapping.txt": "This should be ignored",
	}

	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
	}

	registry := NewRegistry()
	if err := registry.LoadDirectory(tmpDir); err != nil {
		t.Errorf("LoadDirectory() error = %v", err)
	}

	if registry.Count() != 2 {
		t.Errorf("Count() = %d, want 2", registry.Count())
	}

	// Both .yaml and .yml should be loaded
	if _, ok := registry.Get("mapping-a"); !ok {
		t.Error("mapping-a should be loaded")
	}
	if _, ok := registry.Get("mapping-b"); !ok {
		t.Error("mapping-b should be loaded")
	}
}

func TestRegistryLoadDirectoryNonExistent(t *testing.T) {
	registry := NewRegistry()

	// Loading non-existent directory should not error (just returns with nothing loaded)
	if err := registry.LoadDirectory("/non/existent/path"); err != nil {
		t.Errorf("LoadDirectory() non-existent should not error, got: %v", err)
	}

	if registry.Count() != 0 {
		t.Errorf("Count() = %d, want 0", registry.Count())
	}
}

func TestRegistryReload(t *testing.T) {
	tmpDir := t.TempDir()

	mappingFile := filepath.Join(tmpDir, "test.yaml")
	if err := os.WriteFile(mappingFile, []byte(testMappingYAML), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	registry, err := NewRegistryWithDirectory(tmpDir)
	if err != nil {
		t.Fatalf("NewRegistryWithDirectory() error = %v", err)
	}

	mapping, _ := registry.Get("test-yaml")
	if len(mapping.Fields) != 2 {
		t.Errorf("Fields len = %d, want 2", len(mapping.Fields))
	}

	// Update the file
	updated := `
format_id: "test-yaml"
version: "2.0.0"
namespace: "https://example.org/test#"
fields:
  - field: "title"
    property: "title"
    match: "exact"
    kind: "string"
`
	if err := os.WriteFile(mappingFile, []byte(updated), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := registry.Reload(); err != nil {
		t.Errorf("Reload() error = %v", err)
	}

	mapping, _ = registry.Get("test-yaml")
	if mapping.Version != "2.0.0" {
		t.Errorf("Version after reload = %q, want %q", mapping.Version, "2.0.0")
	}
	if len(mapping.Fields) != 1 {
		t.Errorf("Fields len after reload = %d, want 1", len(mapping.Fields))
	}
}

func TestRegistryReloadNoDirectory(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Reload(); err == nil {
		t.Error("Reload() without directory should return error")
	}
}

func TestRegistryWatch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping watch test in short mode")
	}

	tmpDir := t.TempDir()

	mappingFile := filepath.Join(tmpDir, "test.yaml")
	if err := os.WriteFile(mappingFile, []byte(testMappingYAML), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	registry, err := NewRegistryWithDirectory(tmpDir)
	if err != nil {
		t.Fatalf("NewRegistryWithDirectory() error = %v", err)
	}

	changed := make(chan bool, 1)
	registry.SetOnChange(func(event string, mapping *FormatMapping) {
		select {
		case changed <- true:
		default:
		}
	})

	if err := registry.Watch(); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer registry.StopWatch()

	// Give the watcher time to initialize
	time.Sleep(100 * time.Millisecond)

	// Update the file
	updated := `
format_id: "test-yaml"
version: "2.0.0"
namespace: "https://example.org/test#"
fields:
  - field: "title"
    property: "title"
    match: "exact"
    kind: "string"
`
	if err := os.WriteFile(mappingFile, []byte(updated), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// Wait for change with timeout
	select {
	case <-changed:
		// Success - wait a bit for the reload to complete
		time.Sleep(100 * time.Millisecond)
	case <-time.After(3 * time.Second):
		// File watching can be flaky in CI environments, so we just log
		t.Log("Watch() did not detect file change within timeout (may be CI environment)")
		return
	}

	mapping, _ := registry.Get("test-yaml")
	if mapping.Version != "2.0.0" {
		t.Errorf("Version = %q, want %q", mapping.Version, "2.0.0")
	}
}

func TestRegistryStopWatchDuringEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping watch test in short mode")
	}

	tmpDir := t.TempDir()

	mappingFile := filepath.Join(tmpDir, "test.yaml")
	if err := os.WriteFile(mappingFile, []byte(testMappingYAML), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	registry, err := NewRegistryWithDirectory(tmpDir)
	if err != nil {
		t.Fatalf("NewRegistryWithDirectory() error = %v", err)
	}

	if err := registry.Watch(); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Keep events flowing while the watch is torn down
	done := make(chan bool)
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			os.WriteFile(mappingFile, []byte(testMappingYAML), 0644)
			time.Sleep(5 * time.Millisecond)
		}
	}()

	time.Sleep(25 * time.Millisecond)
	registry.StopWatch()
	<-done

	if _, ok := registry.Get("test-yaml"); !ok {
		t.Error("mapping should survive StopWatch()")
	}
}

func TestRegistryWatchNoDirectory(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Watch(); err == nil {
		t.Error("Watch() without directory should return error")
	}
}

func TestNewRegistryWithDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	mappingFile := filepath.Join(tmpDir, "test.yaml")
	if err := os.WriteFile(mappingFile, []byte(testMappingYAML), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	registry, err := NewRegistryWithDirectory(tmpDir)
	if err != nil {
		t.Fatalf("NewRegistryWithDirectory() error = %v", err)
	}

	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1", registry.Count())
	}
}
