package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"
	"github.com/oomph-ac/fpinertia/settings"
)

const (
	profileDir  = "presets"
	itemDir     = "Items"
	mappingDir  = "mappings"
	presetExt   = ".json"
	defaultName = "WeaponTypes"
)

var fileNameReplacer = strings.NewReplacer(
	`\`, "_", "/", "_", ":", "_", "*", "_", "?", "_", `"`, "_", "<", "_", ">", "_", "|", "_",
)

// sanitizeFileName replaces characters that are not allowed in file names on common platforms.
func sanitizeFileName(name string) string {
	return fileNameReplacer.Replace(name)
}

// profileEntry is one type of a profile file. The bundle fields are inlined next to the
// type metadata.
type profileEntry struct {
	settings.Bundle
	WeaponType   string `json:"weaponType"`
	IsCustomType bool   `json:"isCustomType"`
}

// itemEntry is the content of a per-item override file.
type itemEntry struct {
	settings.Bundle
	EditorID string `json:"editorID"`
}

// decodeProfile reads a profile file. Line and block comments are accepted. Each entry
// starts from the default bundle, so fields missing from the file keep their defaults.
func decodeProfile(data []byte) (map[string]profileEntry, error) {
	raw := map[string]json.RawMessage{}
	if err := jsonc.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]profileEntry, len(raw))
	for name, msg := range raw {
		entry := profileEntry{Bundle: settings.DefaultBundle()}
		if err := json.Unmarshal(msg, &entry); err != nil {
			return nil, fmt.Errorf("type %q: %w", name, err)
		}
		entry.Bundle.Sanitize()
		out[name] = entry
	}
	return out, nil
}

func decodeItem(data []byte) (itemEntry, error) {
	entry := itemEntry{Bundle: settings.DefaultBundle()}
	if err := jsonc.Unmarshal(data, &entry); err != nil {
		return entry, err
	}
	entry.Bundle.Sanitize()
	return entry, nil
}

// writeJSON writes v indented to path through a temporary file, so a crash mid write never
// leaves a truncated preset behind.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
