// Package discovery resolves the set of video files a check run covers.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jerald6111/video-quality-checker/internal/logging"
	"github.com/jerald6111/video-quality-checker/internal/util"
)

// Result lists the discovered files together with how many directory
// entries were skipped as non-video.
type Result struct {
	Files        []string
	SkippedCount int
}

// Resolve expands a path argument into the files to check. A video file is
// returned as-is; a directory is scanned one level deep.
func Resolve(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}
	if !info.IsDir() {
		if !util.IsVideoFile(path) {
			return nil, fmt.Errorf("%s is not a recognized video file", path)
		}
		return &Result{Files: []string{path}}, nil
	}
	return scanDirectory(path)
}

// scanDirectory returns the video files directly inside dir, sorted by
// lowercased filename. Hidden files and subdirectories are ignored.
func scanDirectory(dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if util.IsVideoFile(full) {
			result.Files = append(result.Files, full)
		} else {
			result.SkippedCount++
		}
	}

	if len(result.Files) == 0 {
		return nil, fmt.Errorf("no video files found in %s", dir)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(result.Files[i])) < strings.ToLower(filepath.Base(result.Files[j]))
	})
	return result, nil
}

// Log summarizes a discovery result: the first few filenames at debug
// level plus an overall count.
func (r *Result) Log(logger *logging.Logger) {
	if logger == nil {
		return
	}
	logger.Info("discovered video files", "count", len(r.Files), "skipped", r.SkippedCount)

	const maxToLog = 5
	for i, f := range r.Files {
		if i == maxToLog {
			logger.Debug("more files follow", "remaining", len(r.Files)-maxToLog)
			break
		}
		logger.Debug("queued for checking", "file", filepath.Base(f))
	}
}
