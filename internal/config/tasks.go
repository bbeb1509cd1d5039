package config

import (
	"github.com/lakshaymaurya-felt/quickclean/internal/paths"
)

// TaskConfig describes one cleanup task. The order of the slice handed to the
// engine is the execution order.
type TaskConfig struct {
	// Name is the user-facing task label.
	Name string

	// Category selects which resolver lookup supplies the task's roots.
	Category paths.Category

	// Enabled tasks run; disabled tasks are skipped entirely and do not
	// appear in the run summary.
	Enabled bool

	// Recursive controls whether the deleter descends into subdirectories.
	Recursive bool
}

// DefaultTasks returns the standard cleanup plan. System Temp ships disabled:
// it usually needs elevation and a partial clean there is more disruptive
// than useful.
func DefaultTasks() []TaskConfig {
	return []TaskConfig{
		{Name: "Recycle Bin", Category: paths.CategoryRecycleBin, Enabled: true},
		{Name: "User Temp", Category: paths.CategoryUserTemp, Enabled: true, Recursive: true},
		{Name: "System Temp", Category: paths.CategorySystemTemp, Enabled: false, Recursive: true},
		{Name: "Recent Items", Category: paths.CategoryRecentItems, Enabled: true, Recursive: true},
		{Name: "Windows Thumbnails", Category: paths.CategoryThumbnails, Enabled: true},
		{Name: "Google Chrome Cache", Category: paths.CategoryChrome, Enabled: true, Recursive: true},
		{Name: "Microsoft Edge Cache", Category: paths.CategoryEdge, Enabled: true, Recursive: true},
		{Name: "Brave Cache", Category: paths.CategoryBrave, Enabled: true, Recursive: true},
		{Name: "Vivaldi Cache", Category: paths.CategoryVivaldi, Enabled: true, Recursive: true},
		{Name: "Opera Cache", Category: paths.CategoryOpera, Enabled: true, Recursive: true},
		{Name: "Firefox Cache", Category: paths.CategoryFirefox, Enabled: true, Recursive: true},
	}
}
