package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolvePhotoURL resolves a stored asset path to a serving URL.
// Pure and synchronous; presentation helpers call it when showing
// applicant or employer identity next to lifecycle data.
func ResolvePhotoURL(baseURL, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// GetProjectRoot locates the project root by walking up to the
// directory containing go.mod. Falls back to the source tree location
// when run outside the module (tests from a temp dir).
func GetProjectRoot() (string, error) {
	modDir, err := findGoModDir("")
	if err == nil {
		return modDir, nil
	}

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("cannot determine caller path: %w", err)
	}
	projectRoot := filepath.Join(filepath.Dir(filename), "..")
	return filepath.Abs(projectRoot)
}

func findGoModDir(startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		if fileExists(filepath.Join(currentDir, "go.mod")) {
			return currentDir, nil
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}
	return "", fmt.Errorf("go.mod not found above %s", startDir)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
