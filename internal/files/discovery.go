package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "pricescan/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. basePath is
// prepended to relative directories.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// ReportSuffix marks generated report files so re-scans never pick up
// their own output.
const ReportSuffix = "_outliers"

// FindPriceFiles finds the CSV and XLSX files in dir that are candidates
// for outlier scanning. Excel lock files (~$...) and previously generated
// *_outliers.* reports are skipped. The configured directory being
// missing or unreadable is a PathError, fatal for the run.
func (d *Discovery) FindPriceFiles(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) && d.basePath != "" {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, apperrors.NewPathError(fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !isPriceFile(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// Stable processing order regardless of directory listing order
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// isPriceFile reports whether name looks like a scannable input file.
func isPriceFile(name string) bool {
	if strings.HasPrefix(name, "~$") {
		return false
	}

	lower := strings.ToLower(name)
	ext := filepath.Ext(lower)
	if ext != ".csv" && ext != ".xlsx" {
		return false
	}

	base := strings.TrimSuffix(lower, ext)
	return !strings.HasSuffix(base, ReportSuffix)
}

// ReportPath returns the output path for the report belonging to the
// input file at path: the input name with the report suffix and the same
// extension, placed in reportDir, or next to the input when reportDir is
// empty.
func ReportPath(path, reportDir string) string {
	dir := filepath.Dir(path)
	if reportDir != "" {
		dir = reportDir
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	return filepath.Join(dir, base+ReportSuffix+ext)
}
