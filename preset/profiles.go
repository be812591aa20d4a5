package preset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/oomph-ac/fpinertia/oerror"
	"github.com/samber/lo"
)

func (s *Store) ActiveProfile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Profiles lists the profile names found on disk, sorted.
func (s *Store) Profiles() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, profileDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	names := lo.FilterMap(entries, func(e fs.DirEntry, _ int) (string, bool) {
		if e.IsDir() || filepath.Ext(e.Name()) != presetExt {
			return "", false
		}
		return strings.TrimSuffix(e.Name(), presetExt), true
	})
	slices.Sort(names)
	return names, nil
}

func (s *Store) profileExists(name string) bool {
	_, err := os.Stat(s.profilePath(name))
	return err == nil
}

func validProfileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return oerror.New("profile name must not be empty")
	}
	return nil
}

// SetActiveProfile switches to another profile, discarding unsaved edits of the current one.
func (s *Store) SetActiveProfile(name string) error {
	if err := validProfileName(name); err != nil {
		return err
	}
	if !s.profileExists(name) {
		return oerror.New("profile %q does not exist", name)
	}
	if err := s.loadProfile(name); err != nil {
		return err
	}
	s.log.Info("switched preset profile", "profile", name)
	return nil
}

// CreateProfile saves the current values under a new name and makes it the active profile.
func (s *Store) CreateProfile(name string) error {
	if err := validProfileName(name); err != nil {
		return err
	}
	if s.profileExists(name) {
		return oerror.New("profile %q already exists", name)
	}
	s.mu.Lock()
	s.active = name
	s.mu.Unlock()
	return s.Save()
}

// DuplicateProfile copies the file of profile src to dst. The active profile does not change.
func (s *Store) DuplicateProfile(src, dst string) error {
	if err := validProfileName(dst); err != nil {
		return err
	}
	if s.profileExists(dst) {
		return oerror.New("profile %q already exists", dst)
	}
	data, err := os.ReadFile(s.profilePath(src))
	if err != nil {
		return fmt.Errorf("read profile %q: %w", src, err)
	}
	if err := os.WriteFile(s.profilePath(dst), data, 0o644); err != nil {
		return fmt.Errorf("write profile %q: %w", dst, err)
	}
	return nil
}

// DeleteProfile removes a profile file. The active profile cannot be deleted.
func (s *Store) DeleteProfile(name string) error {
	if name == s.ActiveProfile() {
		return oerror.New("cannot delete the active profile %q", name)
	}
	if err := os.Remove(s.profilePath(name)); err != nil {
		return fmt.Errorf("delete profile %q: %w", name, err)
	}
	return nil
}

func (s *Store) RenameProfile(oldName, newName string) error {
	if err := validProfileName(newName); err != nil {
		return err
	}
	if s.profileExists(newName) {
		return oerror.New("profile %q already exists", newName)
	}
	if err := os.Rename(s.profilePath(oldName), s.profilePath(newName)); err != nil {
		return fmt.Errorf("rename profile %q: %w", oldName, err)
	}

	s.mu.Lock()
	if s.active == oldName {
		s.active = newName
	}
	s.mu.Unlock()
	return nil
}
