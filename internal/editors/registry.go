package editors

import "sync"

// Registry holds every known editor manager, keyed by its stable ID.
// Grounded on the original EditorRegistry's register-all-at-construction
// shape, with a sync.RWMutex standing in for parking_lot::RwLock.
type Registry struct {
	mu       sync.RWMutex
	managers map[string]Manager
}

// NewRegistry returns an empty registry. Use NewDefaultRegistry to get one
// pre-populated with every built-in editor.
func NewRegistry() *Registry {
	return &Registry{managers: make(map[string]Manager)}
}

// NewDefaultRegistry returns a Registry pre-populated with the full set of
// built-in editors: VS Code family, JetBrains family, terminal-based
// editors (with Neovim's RPC-controlled variant), and the standalone GUI
// editors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	for _, cfg := range vscodeFamily {
		r.Register(newVSCodeManager(cfg))
	}
	for _, cfg := range jetbrainsFamily {
		r.Register(newJetBrainsManager(cfg))
	}

	r.Register(newNeovimManager())
	for _, cfg := range terminalEditors {
		r.Register(newTerminalEditorManager(cfg))
	}

	r.Register(newZedManager())
	r.Register(newSublimeManager())
	r.Register(newXcodeManager())

	return r
}

// Register adds or replaces a manager under its own ID.
func (r *Registry) Register(m Manager) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.managers[m.ID()] = m
}

// Get looks up a manager by ID.
func (r *Registry) Get(id string) (Manager, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.managers[id]
	return m, ok
}

// List returns every registered editor ID.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.managers))
	for id := range r.managers {
		ids = append(ids, id)
	}
	return ids
}

// terminalAware is implemented by managers that launch inside a detected
// terminal emulator and can be steered by the user's preferred_terminal
// setting.
type terminalAware interface {
	SetPreferredTerminal(name string)
}

// ApplyPreferredTerminal pushes the settings document's preferred_terminal
// value into every registered manager that launches inside a terminal
// emulator.
func (r *Registry) ApplyPreferredTerminal(name string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.managers {
		if ta, ok := m.(terminalAware); ok {
			ta.SetPreferredTerminal(name)
		}
	}
}
