package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/IGLOU-EU/go-wildcard"
)

// Category identifies one cleanup location family. The engine maps each
// configured task to exactly one category.
type Category string

const (
	CategoryUserTemp    Category = "user-temp"
	CategorySystemTemp  Category = "system-temp"
	CategoryRecentItems Category = "recent-items"
	CategoryThumbnails  Category = "thumbnails"
	CategoryRecycleBin  Category = "recycle-bin"
	CategoryChrome      Category = "chrome-cache"
	CategoryEdge        Category = "edge-cache"
	CategoryBrave       Category = "brave-cache"
	CategoryVivaldi     Category = "vivaldi-cache"
	CategoryOpera       Category = "opera-cache"
	CategoryFirefox     Category = "firefox-cache"
)

var (
	// ErrNoUserProfile is returned when the per-user environment
	// (LOCALAPPDATA / APPDATA) cannot be resolved at all.
	ErrNoUserProfile = errors.New("user profile environment not resolvable")

	// ErrUnknownCategory is returned for a category this resolver has no
	// location table for.
	ErrUnknownCategory = errors.New("unknown cleanup category")
)

// thumbnailPatterns are the Explorer cache database filename patterns.
var thumbnailPatterns = []string{"thumbcache*.db", "iconcache*.db"}

// KnownCategory reports whether cat is a category this package can resolve.
func KnownCategory(cat Category) bool {
	switch cat {
	case CategoryUserTemp, CategorySystemTemp, CategoryRecentItems,
		CategoryThumbnails, CategoryRecycleBin, CategoryFirefox:
		return true
	}
	_, ok := chromiumBrowsers[cat]
	return ok
}

// ─── Resolver ────────────────────────────────────────────────────────────────

// Resolver turns a Category into the concrete filesystem locations that exist
// for the current user. Environment lookups happen once at construction;
// Resolve itself only probes the filesystem.
type Resolver struct {
	userTemp     string
	localAppData string
	appData      string
	winDir       string
}

// NewResolver captures the per-user environment. A missing LOCALAPPDATA or
// APPDATA means there is no user profile to clean against, which is a fatal
// configuration error for the caller.
func NewResolver() (*Resolver, error) {
	r := &Resolver{
		userTemp:     os.Getenv("TEMP"),
		localAppData: os.Getenv("LOCALAPPDATA"),
		appData:      os.Getenv("APPDATA"),
		winDir:       os.Getenv("WINDIR"),
	}
	if r.winDir == "" {
		r.winDir = `C:\Windows`
	}
	if r.localAppData == "" || r.appData == "" {
		return nil, ErrNoUserProfile
	}
	return r, nil
}

// Resolve returns the existing locations for a category. A category that is
// simply absent on this machine (browser not installed, empty profile) yields
// an empty slice, not an error.
func (r *Resolver) Resolve(cat Category) ([]string, error) {
	switch cat {
	case CategoryUserTemp:
		return r.userTempDirs(), nil
	case CategorySystemTemp:
		return existingDirs(filepath.Join(r.winDir, "Temp")), nil
	case CategoryRecentItems:
		return existingDirs(filepath.Join(r.appData, "Microsoft", "Windows", "Recent")), nil
	case CategoryThumbnails:
		return r.thumbnailFiles(), nil
	case CategoryRecycleBin:
		// Emptied via the Shell API, no direct path.
		return nil, nil
	case CategoryFirefox:
		return r.firefoxCacheDirs(), nil
	}
	if spec, ok := chromiumBrowsers[cat]; ok {
		return r.chromiumCacheDirs(spec), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, cat)
}

// userTempDirs returns %TEMP% and %LOCALAPPDATA%\Temp, deduplicating since
// %TEMP% usually points at the latter.
func (r *Resolver) userTempDirs() []string {
	candidates := []string{
		r.userTemp,
		filepath.Join(r.localAppData, "Temp"),
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, d := range candidates {
		if d == "" {
			continue
		}
		cleaned := filepath.Clean(d)
		key := strings.ToLower(cleaned)
		if seen[key] {
			continue
		}
		seen[key] = true
		dirs = append(dirs, existingDirs(cleaned)...)
	}
	return dirs
}

// thumbnailFiles returns the Explorer thumbnail/icon cache database files.
// These are individual files, not directories; the deleter handles both.
func (r *Resolver) thumbnailFiles() []string {
	explorerDir := filepath.Join(r.localAppData, "Microsoft", "Windows", "Explorer")

	entries, err := os.ReadDir(explorerDir)
	if err != nil {
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		for _, pattern := range thumbnailPatterns {
			if wildcard.Match(pattern, name) {
				files = append(files, filepath.Join(explorerDir, entry.Name()))
				break
			}
		}
	}
	return files
}

// existingDirs filters candidates down to those that exist as directories.
func existingDirs(candidates ...string) []string {
	var dirs []string
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, c)
	}
	return dirs
}
