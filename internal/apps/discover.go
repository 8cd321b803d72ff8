package apps

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/portlauncher/internal/model"
)

// ManifestFile is the optional per-app metadata file name.
const ManifestFile = "app.json"

// Manifest is the parsed app.json. Unknown fields are ignored.
type Manifest struct {
	// Name is the human-facing name shown in menus.
	Name string `json:"name"`

	// Description is a one-line summary.
	Description string `json:"description,omitempty"`
}

// LoadManifest reads and parses an app.json file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Strip // and /* */ comments and trailing commas.
	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &m, nil
}

// Discover lists the applications in appsDir that have a run<ext> script,
// sorted by name. A missing appsDir yields an empty list.
//
// A broken manifest does not hide the app; it falls back to the directory
// name and the error is returned in skipped so callers can log it.
func Discover(appsDir, ext string) (found []model.App, skipped []error, err error) {
	entries, err := os.ReadDir(appsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read apps directory %s: %w", appsDir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if model.ValidateAppName(name) != nil {
			continue
		}

		dir := filepath.Join(appsDir, name)
		// Follow symlinked app directories like the launcher does.
		info, statErr := os.Stat(dir)
		if statErr != nil || !info.IsDir() {
			continue
		}

		script := filepath.Join(dir, "run"+ext)
		if fi, statErr := os.Stat(script); statErr != nil || fi.IsDir() {
			continue
		}

		app := model.App{
			Name:        name,
			DisplayName: name,
			ScriptPath:  script,
		}

		manifestPath := filepath.Join(dir, ManifestFile)
		if _, statErr := os.Stat(manifestPath); statErr == nil {
			m, loadErr := LoadManifest(manifestPath)
			if loadErr != nil {
				skipped = append(skipped, loadErr)
			} else {
				if m.Name != "" {
					app.DisplayName = m.Name
				}
				app.Description = m.Description
			}
		}

		found = append(found, app)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Name < found[j].Name
	})
	return found, skipped, nil
}
