package arch

import (
	"fmt"
	"slices"
	"strings"
)

// Registry resolves architecture and mode names to handlers.
// It is populated once by NewRegistry and is read-only afterwards, which
// makes it safe to share between goroutines.
type Registry struct {
	handlers map[string]Handler
	modes    map[string]string // accepted name -> canonical mode
	names    []string
}

// NewRegistry returns a registry containing the given handlers. Every mode
// string of a handler becomes a name that resolves to it.
func NewRegistry(handlers ...Handler) (*Registry, error) {
	r := &Registry{
		handlers: make(map[string]Handler),
		modes:    make(map[string]string),
	}

	for _, h := range handlers {
		info := h.Info()
		if len(info.Modes) == 0 {
			return nil, fmt.Errorf("architecture '%s' has no modes", info.Name)
		}

		names := append([]string{info.Name}, info.Modes...)
		for _, name := range names {
			key := strings.ToLower(name)
			if existing, ok := r.handlers[key]; ok && existing != h {
				return nil, fmt.Errorf("architecture name '%s' registered twice", name)
			}
			r.handlers[key] = h
			if _, ok := r.modes[key]; !ok {
				r.modes[key] = canonicalMode(info, key)
			}
		}
		r.names = append(r.names, info.Name)
	}

	slices.Sort(r.names)
	return r, nil
}

// Resolve returns the handler for the given architecture or mode name and
// the mode that the name selects.
func (r *Registry) Resolve(name string) (Handler, string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	h, ok := r.handlers[key]
	if !ok {
		return nil, "", fmt.Errorf("%w '%s', supported: %s", ErrUnknownArchitecture, name,
			strings.Join(r.Modes(), ", "))
	}
	return h, r.modes[key], nil
}

// Names returns the canonical names of all registered architectures.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Modes returns all accepted architecture and mode names, sorted.
func (r *Registry) Modes() []string {
	modes := make([]string, 0, len(r.modes))
	for name := range r.modes {
		modes = append(modes, name)
	}
	slices.Sort(modes)
	return modes
}

// canonicalMode maps the architecture name itself to the default mode and
// keeps mode names as they are.
func canonicalMode(info Info, key string) string {
	if key == strings.ToLower(info.Name) {
		return info.Modes[0]
	}
	return key
}
