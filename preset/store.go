package preset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/oomph-ac/fpinertia/inertia"
	"github.com/oomph-ac/fpinertia/oerror"
	"github.com/oomph-ac/fpinertia/settings"
	"github.com/oomph-ac/fpinertia/worker"
	"github.com/samber/lo"
	"go.uber.org/atomic"
)

var _ inertia.Resolver = (*Store)(nil)

type customType struct {
	base   settings.Category
	bundle *settings.Bundle
}

// Store holds the per category, per custom type and per item parameter bundles of the active
// profile. Bundles handed out by Resolve are never mutated; edits swap in a new bundle and bump
// the settings version so resolvers caching them know to look again.
type Store struct {
	dir string
	log *slog.Logger

	mu         sync.RWMutex
	active     string
	categories [settings.CategoryCount]*settings.Bundle
	custom     map[string]customType
	items      map[string]*settings.Bundle
	mappings   []KeywordMapping
	fallback   *settings.Bundle

	version *atomic.Uint32
	dirty   *atomic.Bool
}

// New creates a store rooted at dir. Nothing is read until Load is called; until then every
// lookup resolves to the default bundle.
func New(dir string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		dir:      dir,
		log:      log,
		active:   defaultName,
		custom:   map[string]customType{},
		items:    map[string]*settings.Bundle{},
		version:  atomic.NewUint32(0),
		dirty:    atomic.NewBool(false),
		fallback: newBundle(settings.DefaultBundle()),
	}
	s.resetCategories()
	return s
}

func newBundle(b settings.Bundle) *settings.Bundle {
	b.Sanitize()
	return &b
}

func (s *Store) profilePath(name string) string {
	return filepath.Join(s.dir, profileDir, sanitizeFileName(name)+presetExt)
}

func (s *Store) itemPath(editorID string) string {
	return filepath.Join(s.dir, profileDir, itemDir, sanitizeFileName(editorID)+presetExt)
}

func (s *Store) resetCategories() {
	for i := range s.categories {
		s.categories[i] = s.fallback
	}
}

// Load reads keyword mappings, the named profile and all item overrides. A profile that does not
// exist yet is created from the defaults. An empty name selects the default profile.
func (s *Store) Load(profile string) error {
	if profile == "" {
		profile = defaultName
	}
	mappings, errs := loadMappingDir(filepath.Join(s.dir, mappingDir))
	for _, err := range errs {
		s.log.Warn("skipping keyword mapping", "err", err)
	}

	s.mu.Lock()
	s.mappings = mappings
	s.mu.Unlock()

	if err := s.loadProfile(profile); err != nil {
		return err
	}
	return s.loadItems()
}

// loadProfile replaces the category and custom type bundles with the content of the named profile.
func (s *Store) loadProfile(name string) error {
	data, err := os.ReadFile(s.profilePath(name))
	if errors.Is(err, fs.ErrNotExist) {
		s.mu.Lock()
		s.active = name
		s.resetCategories()
		s.custom = map[string]customType{}
		s.ensureCustomTypes()
		s.mu.Unlock()
		s.version.Inc()

		s.log.Info("initialising preset profile with defaults", "profile", name)
		return s.Save()
	} else if err != nil {
		return fmt.Errorf("read profile %q: %w", name, err)
	}

	entries, err := decodeProfile(data)
	if err != nil {
		return fmt.Errorf("decode profile %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	known := s.knownCustomTypes()
	s.active = name
	s.resetCategories()
	s.custom = map[string]customType{}
	for typeName, entry := range entries {
		if entry.IsCustomType {
			if !slices.Contains(known, typeName) {
				s.log.Debug("skipping custom type without keyword mapping", "profile", name, "type", typeName)
				continue
			}
			base, _ := settings.ParseCategory(entry.WeaponType)
			s.custom[typeName] = customType{base: base, bundle: newBundle(entry.Bundle)}
			continue
		}
		cat, ok := settings.ParseCategory(typeName)
		if !ok {
			s.log.Warn("skipping unknown weapon type", "profile", name, "type", typeName)
			continue
		}
		s.categories[cat] = newBundle(entry.Bundle)
	}
	if s.ensureCustomTypes() {
		s.dirty.Store(true)
	} else {
		s.dirty.Store(false)
	}
	s.version.Inc()
	return nil
}

// knownCustomTypes lists the type names referenced by keyword mappings.
func (s *Store) knownCustomTypes() []string {
	return lo.Uniq(lo.Map(s.mappings, func(m KeywordMapping, _ int) string {
		return m.TypeName
	}))
}

// ensureCustomTypes adds a default bundle for every mapped custom type the profile lacks.
// It reports whether anything was added.
func (s *Store) ensureCustomTypes() bool {
	var added bool
	for _, name := range s.knownCustomTypes() {
		if _, ok := s.custom[name]; ok {
			continue
		}
		s.custom[name] = customType{base: settings.CategoryUnarmed, bundle: s.fallback}
		added = true
	}
	return added
}

func (s *Store) loadItems() error {
	dir := filepath.Join(s.dir, profileDir, itemDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("read item presets: %w", err)
	}

	items := map[string]*settings.Bundle{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != presetExt {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			s.log.Warn("skipping item preset", "file", e.Name(), "err", err)
			continue
		}
		entry, err := decodeItem(data)
		if err != nil {
			s.log.Warn("skipping item preset", "file", e.Name(), "err", err)
			continue
		}
		id := entry.EditorID
		if id == "" {
			id = strings.TrimSuffix(e.Name(), presetExt)
		}
		items[id] = newBundle(entry.Bundle)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.version.Inc()
	return nil
}

// Resolve returns the bundle for an equipped item. Item overrides win, then the most specific
// keyword mapped custom type, then the category bundle. Dual wield categories only ever
// resolve to their category bundle.
func (s *Store) Resolve(id settings.Identity, category settings.Category) *settings.Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !category.DualWield() && !id.Empty() {
		if b, ok := s.items[id.EditorID]; ok && id.EditorID != "" {
			return b
		}
		if name, ok := bestMatch(s.mappings, id.Keywords); ok {
			if ct, ok := s.custom[name]; ok {
				return ct.bundle
			}
		}
	}
	if category < settings.CategoryCount {
		return s.categories[category]
	}
	return s.fallback
}

// SettingsVersion changes every time a resolved bundle may have changed.
func (s *Store) SettingsVersion() uint32 {
	return s.version.Load()
}

// Dirty reports whether there are edits that have not been saved.
func (s *Store) Dirty() bool {
	return s.dirty.Load()
}

func (s *Store) changed() {
	s.dirty.Store(true)
	s.version.Inc()
}

func (s *Store) Category(c settings.Category) settings.Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c >= settings.CategoryCount {
		return *s.fallback
	}
	return *s.categories[c]
}

func (s *Store) SetCategory(c settings.Category, b settings.Bundle) error {
	if c >= settings.CategoryCount {
		return oerror.New("unknown weapon category %d", c)
	}
	s.mu.Lock()
	s.categories[c] = newBundle(b)
	s.mu.Unlock()
	s.changed()
	return nil
}

// CustomTypes returns the custom type names of the active profile in sorted order.
func (s *Store) CustomTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := lo.Keys(s.custom)
	slices.Sort(names)
	return names
}

func (s *Store) CustomType(name string) (settings.Bundle, settings.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ct, ok := s.custom[name]
	if !ok {
		return settings.Bundle{}, settings.CategoryUnarmed, false
	}
	return *ct.bundle, ct.base, true
}

func (s *Store) SetCustomType(name string, base settings.Category, b settings.Bundle) error {
	if name == "" {
		return oerror.New("custom type name must not be empty")
	}
	s.mu.Lock()
	s.custom[name] = customType{base: base, bundle: newBundle(b)}
	s.mu.Unlock()
	s.changed()
	return nil
}

func (s *Store) Item(editorID string) (settings.Bundle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.items[editorID]
	if !ok {
		return settings.Bundle{}, false
	}
	return *b, true
}

// Items returns the editor IDs that carry an override, sorted.
func (s *Store) Items() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := lo.Keys(s.items)
	slices.Sort(ids)
	return ids
}

// SetItem sets the override for one item and writes its file.
func (s *Store) SetItem(editorID string, b settings.Bundle) error {
	if editorID == "" {
		return oerror.New("item override needs an editor ID")
	}
	bundle := newBundle(b)
	s.mu.Lock()
	s.items[editorID] = bundle
	s.mu.Unlock()
	s.version.Inc()
	return s.SaveItem(editorID)
}

// RemoveItem drops the override for an item together with its file.
func (s *Store) RemoveItem(editorID string) error {
	s.mu.Lock()
	_, ok := s.items[editorID]
	delete(s.items, editorID)
	s.mu.Unlock()
	if !ok {
		return oerror.New("no override for item %q", editorID)
	}
	s.version.Inc()
	if err := os.Remove(s.itemPath(editorID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove item preset %q: %w", editorID, err)
	}
	return nil
}

func (s *Store) SaveItem(editorID string) error {
	s.mu.RLock()
	b, ok := s.items[editorID]
	s.mu.RUnlock()
	if !ok {
		return oerror.New("no override for item %q", editorID)
	}
	if err := writeJSON(s.itemPath(editorID), itemEntry{Bundle: *b, EditorID: editorID}); err != nil {
		return fmt.Errorf("write item preset %q: %w", editorID, err)
	}
	return nil
}

// ResetToDefaults replaces every category and custom type bundle with the defaults. Item
// overrides are kept.
func (s *Store) ResetToDefaults() {
	s.mu.Lock()
	s.resetCategories()
	for name, ct := range s.custom {
		s.custom[name] = customType{base: ct.base, bundle: s.fallback}
	}
	s.mu.Unlock()
	s.changed()
}

// snapshot builds the file content of the active profile.
func (s *Store) snapshot() (string, map[string]profileEntry) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]profileEntry, len(s.categories)+len(s.custom))
	for i, b := range s.categories {
		c := settings.Category(i)
		out[c.String()] = profileEntry{Bundle: *b, WeaponType: c.String()}
	}
	for name, ct := range s.custom {
		out[name] = profileEntry{Bundle: *ct.bundle, WeaponType: ct.base.String(), IsCustomType: true}
	}
	return s.active, out
}

// Save writes the active profile.
func (s *Store) Save() error {
	name, entries := s.snapshot()
	if err := writeJSON(s.profilePath(name), entries); err != nil {
		return fmt.Errorf("write profile %q: %w", name, err)
	}
	s.dirty.Store(false)
	return nil
}

// SaveAsync writes the active profile on a worker. The returned channel receives the result.
func (s *Store) SaveAsync() <-chan error {
	res := make(chan error, 1)
	worker.Submit(func() {
		res <- s.Save()
	})
	return res
}
