package envfile

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// maxScanFileSize caps how much of any single file the scanner reads.
const maxScanFileSize = 1 << 20 // 1 MiB

// usagePatterns match environment variable reads in project sources. The
// first capture group is the variable name.
var usagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`process\.env\.([A-Z][A-Z0-9_]*)`),
	regexp.MustCompile(`process\.env\[["']([A-Z][A-Z0-9_]*)["']\]`),
	regexp.MustCompile(`import\.meta\.env\.([A-Z][A-Z0-9_]*)`),
	regexp.MustCompile(`os\.environ\[["']([A-Z][A-Z0-9_]*)["']\]`),
	regexp.MustCompile(`os\.environ\.get\(["']([A-Z][A-Z0-9_]*)["']`),
	regexp.MustCompile(`os\.getenv\(["']([A-Z][A-Z0-9_]*)["']`),
	regexp.MustCompile(`os\.Getenv\("([A-Z][A-Z0-9_]*)"\)`),
}

var scanExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
	".py":  true,
	".go":  true,
}

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	".git":         true,
	".next":        true,
	"__pycache__":  true,
	".venv":        true,
}

// ScanUsages walks the project tree and reports which environment variables
// its sources read, mapping each name to the files referencing it (relative
// to root, sorted). Unreadable files are skipped.
func ScanUsages(root string) (map[string][]string, error) {
	found := make(map[string]map[string]bool)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !scanExtensions[filepath.Ext(path)] {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > maxScanFileSize {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		for _, pattern := range usagePatterns {
			for _, match := range pattern.FindAllStringSubmatch(string(data), -1) {
				name := match[1]
				if found[name] == nil {
					found[name] = make(map[string]bool)
				}
				found[name][rel] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	usages := make(map[string][]string, len(found))
	for name, files := range found {
		list := make([]string, 0, len(files))
		for f := range files {
			list = append(list, f)
		}
		sort.Strings(list)
		usages[name] = list
	}
	return usages, nil
}

// UsedVars returns just the sorted variable names from ScanUsages output.
func UsedVars(usages map[string][]string) []string {
	names := make([]string, 0, len(usages))
	for name := range usages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSecretLike reports whether a variable name suggests it holds a secret,
// used to prioritize scan results in command output.
func IsSecretLike(name string) bool {
	for _, hint := range []string{"KEY", "TOKEN", "SECRET", "PASSWORD", "CREDENTIAL"} {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}
