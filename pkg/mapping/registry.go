package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"
)

// Registry manages a collection of format mappings.
type Registry interface {
	// Register adds a mapping to the registry
	Register(mapping *FormatMapping) error

	// Unregister removes a mapping from the registry
	Unregister(formatID string) error

	// Get returns a mapping by its format ID
	Get(formatID string) (*FormatMapping, bool)

	// List returns all registered mappings
	List() []*FormatMapping

	// Reload reloads all mappings from the configured directory
	Reload() error

	// Watch starts watching the mapping directory for changes
	Watch() error

	// StopWatch stops watching the mapping directory
	StopWatch()

	// LoadDirectory loads all mappings from a directory
	LoadDirectory(dir string) error

	// LoadFile loads a single mapping file
	LoadFile(path string) error
}

// DefaultRegistry is the default implementation of the mapping Registry.
type DefaultRegistry struct {
	mu       sync.RWMutex
	mappings map[string]*FormatMapping
	files    map[string]string // file path -> format ID
	dir      string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	onChange func(event string, mapping *FormatMapping)
}

// NewRegistry creates a new mapping registry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		mappings: make(map[string]*FormatMapping),
		files:    make(map[string]string),
	}
}

// NewRegistryWithDirectory creates a new registry and loads mappings from the
// directory.
func NewRegistryWithDirectory(dir string) (*DefaultRegistry, error) {
	r := NewRegistry()
	if err := r.LoadDirectory(dir); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a mapping to the registry.
func (r *DefaultRegistry) Register(mapping *FormatMapping) error {
	if mapping == nil {
		return fmt.Errorf("mapping cannot be nil")
	}

	if err := mapping.Validate(); err != nil {
		return fmt.Errorf("invalid mapping: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.mappings[mapping.FormatID]; ok {
		// Allow update if version is different
		if existing.Version == mapping.Version {
			return fmt.Errorf("mapping %q version %s already registered", mapping.FormatID, mapping.Version)
		}
	}

	r.mappings[mapping.FormatID] = mapping
	return nil
}

// Unregister removes a mapping from the registry.
func (r *DefaultRegistry) Unregister(formatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.mappings[formatID]; !ok {
		return fmt.Errorf("mapping %q not found", formatID)
	}

	delete(r.mappings, formatID)
	return nil
}

// Get returns a mapping by its format ID.
func (r *DefaultRegistry) Get(formatID string) (*FormatMapping, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mapping, ok := r.mappings[formatID]
	return mapping, ok
}

// Count returns the number of registered mappings.
func (r *DefaultRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mappings)
}

// List returns all registered mappings.
func (r *DefaultRegistry) List() []*FormatMapping {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mappings := make([]*FormatMapping, 0, len(r.mappings))
	for _, mapping := range r.mappings {
		mappings = append(mappings, mapping)
	}
	return mappings
}

// LoadDirectory loads all YAML mapping files from a directory.
func (r *DefaultRegistry) LoadDirectory(dir string) error {
	r.dir = dir

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			// Directory doesn't exist, nothing to load
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		path := filepath.Join(dir, name)
		if err := r.LoadFile(path); err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading mappings: %s", strings.Join(loadErrors, "; "))
	}
	return nil
}

// LoadFile loads a single mapping file.
func (r *DefaultRegistry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var mapping FormatMapping
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	// A re-read of a known file replaces its previous mapping.
	r.mu.Lock()
	if previousID, tracked := r.files[path]; tracked {
		delete(r.mappings, previousID)
	}
	r.mu.Unlock()

	if err := r.Register(&mapping); err != nil {
		return fmt.Errorf("registering mapping: %w", err)
	}

	r.mu.Lock()
	r.files[path] = mapping.FormatID
	r.mu.Unlock()

	return nil
}

// Reload reloads all mappings from the configured directory.
func (r *DefaultRegistry) Reload() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for reload")
	}

	r.mu.Lock()
	r.mappings = make(map[string]*FormatMapping)
	r.files = make(map[string]string)
	r.mu.Unlock()

	return r.LoadDirectory(r.dir)
}

// SetOnChange sets a callback function that is called when mappings change.
func (r *DefaultRegistry) SetOnChange(fn func(event string, mapping *FormatMapping)) {
	r.onChange = fn
}

// Watch starts watching the mapping directory for changes.
func (r *DefaultRegistry) Watch() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	r.watcher = watcher
	r.stopChan = make(chan struct{})

	go r.watchLoop()

	if err := watcher.Add(r.dir); err != nil {
		r.watcher.Close()
		return fmt.Errorf("watching directory %s: %w", r.dir, err)
	}

	return nil
}

// StopWatch stops watching the mapping directory.
func (r *DefaultRegistry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
	}
	if r.watcher != nil {
		r.watcher.Close()
	}
}

// watchLoop handles file system events.
func (r *DefaultRegistry) watchLoop() {
	for {
		select {
		case <-r.stopChan:
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}

			// Only process YAML files
			if !strings.HasSuffix(event.Name, ".yaml") && !strings.HasSuffix(event.Name, ".yml") {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				r.handleFileChange(event.Name, "create")

			case event.Op&fsnotify.Write == fsnotify.Write:
				r.handleFileChange(event.Name, "modify")

			case event.Op&fsnotify.Remove == fsnotify.Remove:
				r.handleFileRemove(event.Name)

			case event.Op&fsnotify.Rename == fsnotify.Rename:
				r.handleFileRemove(event.Name)
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue watching
			_ = err
		}
	}
}

// handleFileChange handles mapping file creation or modification.
func (r *DefaultRegistry) handleFileChange(path string, eventType string) {
	if err := r.LoadFile(path); err != nil {
		// Keep serving the previous mapping on a bad edit
		return
	}

	if r.onChange != nil {
		r.mu.RLock()
		formatID, tracked := r.files[path]
		mapping := r.mappings[formatID]
		r.mu.RUnlock()

		if tracked && mapping != nil {
			r.onChange(eventType, mapping)
		}
	}
}

// handleFileRemove handles mapping file removal.
func (r *DefaultRegistry) handleFileRemove(path string) {
	r.mu.Lock()
	formatID, tracked := r.files[path]
	if tracked {
		delete(r.files, path)
		delete(r.mappings, formatID)
	}
	r.mu.Unlock()

	if tracked && r.onChange != nil {
		r.onChange("remove", &FormatMapping{FormatID: formatID})
	}
}
