package host

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownSource   = errors.New("unknown source id")
	ErrDuplicateSource = errors.New("source id already registered")
	ErrInvalidSource   = errors.New("invalid source info")
	ErrCreateFailed    = errors.New("source could not be created")
)

// Registry holds the registered source types of a host process.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]*SourceInfo
}

func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]*SourceInfo)}
}

// Register adds a source type. The descriptor is kept by reference and
// must not be modified afterwards.
func (r *Registry) Register(info *SourceInfo) error {
	if err := validate(info); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sources[info.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSource, info.ID)
	}
	r.sources[info.ID] = info
	return nil
}

func validate(info *SourceInfo) error {
	if info == nil {
		return fmt.Errorf("%w: nil descriptor", ErrInvalidSource)
	}
	if info.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidSource)
	}
	if info.GetName == nil || info.Create == nil || info.Destroy == nil {
		return fmt.Errorf("%w: %s is missing get_name, create or destroy", ErrInvalidSource, info.ID)
	}
	if info.Type == SourceTypeFilter && info.OutputFlags&OutputVideo != 0 && info.VideoRender == nil {
		return fmt.Errorf("%w: video filter %s has no video_render", ErrInvalidSource, info.ID)
	}
	return nil
}

// Lookup returns the descriptor registered under id.
func (r *Registry) Lookup(id string) (*SourceInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.sources[id]
	return info, ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sources))
	for id := range r.sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Create instantiates the source registered under id. Defaults are seeded
// into settings before the create callback runs.
func (r *Registry) Create(id string, settings Data, ctx FilterContext) (*FilterSource, error) {
	info, ok := r.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, id)
	}
	if IsNil(settings) {
		return nil, fmt.Errorf("%w: %s: no settings", ErrCreateFailed, id)
	}
	if info.GetDefaults != nil {
		info.GetDefaults(settings)
	}
	data := info.Create(settings, ctx)
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrCreateFailed, id)
	}
	return &FilterSource{info: info, data: data, settings: settings}, nil
}

// FilterSource is a live source instance created through a Registry.
type FilterSource struct {
	info     *SourceInfo
	data     Instance
	settings Data
}

func (s *FilterSource) ID() string {
	return s.info.ID
}

func (s *FilterSource) Name() string {
	return s.info.GetName()
}

// Settings returns the settings object the source was last updated with.
func (s *FilterSource) Settings() Data {
	return s.settings
}

// Instance returns the opaque state created by the source type.
func (s *FilterSource) Instance() Instance {
	return s.data
}

// Update replaces the source settings. Defaults are seeded first so a
// freshly loaded settings object behaves like the previous one.
func (s *FilterSource) Update(settings Data) {
	if s.data == nil {
		return
	}
	if s.info.GetDefaults != nil {
		s.info.GetDefaults(settings)
	}
	s.settings = settings
	if s.info.Update != nil {
		s.info.Update(s.data, settings)
	}
}

// Render draws one frame through the source.
func (s *FilterSource) Render() {
	if s.data == nil || s.info.VideoRender == nil {
		return
	}
	s.info.VideoRender(s.data)
}

// Properties returns the user editable properties, or nil when the source
// type declares none.
func (s *FilterSource) Properties() *Properties {
	if s.info.GetProperties == nil {
		return nil
	}
	return s.info.GetProperties(s.data)
}

// Destroy releases the instance. Further calls on s are no-ops.
func (s *FilterSource) Destroy() {
	if s.data == nil {
		return
	}
	s.info.Destroy(s.data)
	s.data = nil
}
