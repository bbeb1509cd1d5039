package paths

import (
	"os"
	"path/filepath"
)

// ─── Browser location tables ─────────────────────────────────────────────────

// chromiumSpec describes where a Chromium-family browser keeps its per-user
// data. Adding a browser is a new table row, not new control flow.
type chromiumSpec struct {
	// Root is the data directory relative to %LOCALAPPDATA%.
	Root []string

	// PerProfile indicates the root is a "User Data" directory whose
	// subdirectories (Default, Profile 1, ...) each hold their own caches.
	// When false the root itself is the single profile (Opera).
	PerProfile bool
}

// chromiumCacheSubdirs are the disposable cache directories inside every
// Chromium profile.
var chromiumCacheSubdirs = []string{
	"Cache",
	"Code Cache",
	"GPUCache",
	"ShaderCache",
	"DawnCache",
	"Media Cache",
	filepath.Join("Service Worker", "CacheStorage"),
}

var chromiumBrowsers = map[Category]chromiumSpec{
	CategoryChrome: {
		Root:       []string{"Google", "Chrome", "User Data"},
		PerProfile: true,
	},
	CategoryEdge: {
		Root:       []string{"Microsoft", "Edge", "User Data"},
		PerProfile: true,
	},
	CategoryBrave: {
		Root:       []string{"BraveSoftware", "Brave-Browser", "User Data"},
		PerProfile: true,
	},
	CategoryVivaldi: {
		Root:       []string{"Vivaldi", "User Data"},
		PerProfile: true,
	},
	CategoryOpera: {
		Root:       []string{"Opera Software", "Opera Stable"},
		PerProfile: false,
	},
}

// firefoxCacheSubdirs are the disposable cache directories inside a Firefox
// profile.
var firefoxCacheSubdirs = []string{"cache2", "startupCache"}

// chromiumCacheDirs resolves the existing cache directories for one
// Chromium-family browser across all of its profiles.
func (r *Resolver) chromiumCacheDirs(spec chromiumSpec) []string {
	root := filepath.Join(append([]string{r.localAppData}, spec.Root...)...)
	if _, err := os.Stat(root); err != nil {
		return nil
	}

	profiles := []string{root}
	if spec.PerProfile {
		if entries, err := os.ReadDir(root); err == nil {
			for _, e := range entries {
				if e.IsDir() {
					profiles = append(profiles, filepath.Join(root, e.Name()))
				}
			}
		}
	}

	var dirs []string
	for _, profile := range profiles {
		for _, sub := range chromiumCacheSubdirs {
			dirs = append(dirs, existingDirs(filepath.Join(profile, sub))...)
		}
	}
	return dirs
}

// firefoxCacheDirs enumerates Firefox profiles under both the local and
// roaming Mozilla directories and returns each profile's cache locations.
// Firefox names profiles with a random prefix, so discovery is the only way.
func (r *Resolver) firefoxCacheDirs() []string {
	bases := []string{
		filepath.Join(r.localAppData, "Mozilla", "Firefox", "Profiles"),
		filepath.Join(r.appData, "Mozilla", "Firefox", "Profiles"),
	}

	var dirs []string
	for _, base := range bases {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			profile := filepath.Join(base, e.Name())
			for _, sub := range firefoxCacheSubdirs {
				dirs = append(dirs, existingDirs(filepath.Join(profile, sub))...)
			}
		}
	}
	return dirs
}

// ─── Presence detection ──────────────────────────────────────────────────────

// BrowserCategories lists the browser cache categories in display order.
func BrowserCategories() []Category {
	return []Category{
		CategoryChrome, CategoryEdge, CategoryBrave,
		CategoryVivaldi, CategoryOpera, CategoryFirefox,
	}
}

// BrowserPresent reports whether a browser appears to have data on disk.
// Used only to annotate the task list; cleaning an absent browser is a no-op.
func (r *Resolver) BrowserPresent(cat Category) bool {
	if spec, ok := chromiumBrowsers[cat]; ok {
		root := filepath.Join(append([]string{r.localAppData}, spec.Root...)...)
		return pathHasContent(root)
	}
	if cat == CategoryFirefox {
		return pathHasContent(filepath.Join(r.appData, "Mozilla", "Firefox", "Profiles")) ||
			pathHasContent(filepath.Join(r.localAppData, "Mozilla", "Firefox", "Profiles"))
	}
	return false
}

// pathHasContent reports whether a directory exists and has at least one entry.
func pathHasContent(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}
