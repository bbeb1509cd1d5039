package cleaner

import (
	"context"
	"os"
	"path/filepath"
)

// dirResult accumulates the accounting for one root.
type dirResult struct {
	bytesFreed uint64
	deleted    uint32
	failed     uint32
	errors     []EntryError
}

func (r *dirResult) merge(other dirResult) {
	r.bytesFreed += other.bytesFreed
	r.deleted += other.deleted
	r.failed += other.failed
	r.errors = append(r.errors, other.errors...)
}

// deleteContents removes the contents of root, leaving root itself in place.
// A missing root is a zero result, not an error. Every entry is attempted
// independently: a failure is recorded and enumeration continues. Byte counts
// come from the file size measured immediately before deletion; directories
// contribute only the files inside them.
//
// A root that is itself a regular file (thumbnail cache databases resolve to
// files) is deleted directly with the same accounting.
func deleteContents(ctx context.Context, root string, recursive bool) dirResult {
	var res dirResult

	info, err := os.Lstat(root)
	if err != nil {
		return res // already gone
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return res // never follow links
	}
	if info.Mode().IsRegular() {
		res.merge(removeFile(root, info.Size()))
		return res
	}
	if !info.IsDir() {
		return res
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		res.failed++
		res.errors = append(res.errors, EntryError{Path: root, Reason: err.Error()})
		return res
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return res
		}

		path := filepath.Join(root, entry.Name())
		if entry.Type()&os.ModeSymlink != 0 {
			continue
		}

		if entry.IsDir() {
			if !recursive {
				continue
			}
			res.merge(deleteContents(ctx, path, true))
			// Best effort on the emptied directory. Failure here is
			// tolerated and contributes neither bytes nor counts.
			_ = os.Remove(path)
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			res.failed++
			res.errors = append(res.errors, EntryError{Path: path, Reason: err.Error()})
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		res.merge(removeFile(path, fi.Size()))
	}

	return res
}

// removeFile deletes one regular file whose size was measured beforehand.
// Read-only files are common in caches, so the attribute is cleared before a
// retry.
func removeFile(path string, size int64) dirResult {
	var res dirResult

	err := os.Remove(path)
	if err != nil {
		_ = os.Chmod(path, 0o666)
		err = os.Remove(path)
	}
	if err != nil {
		res.failed++
		res.errors = append(res.errors, EntryError{Path: path, Reason: err.Error()})
		return res
	}

	res.deleted++
	if size > 0 {
		res.bytesFreed += uint64(size)
	}
	return res
}
