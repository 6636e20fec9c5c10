package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModulePath is the module path of the strutil project.
const ModulePath = "github.com/charlievieth/strutil"

func modfilePath(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	file, err := modfile.Parse(name, data, nil)
	if err != nil {
		return "", err
	}
	if file == nil || file.Module == nil || file.Module.Mod.Path == "" {
		return "", errors.New("util: missing module path: " + name)
	}
	return file.Module.Mod.Path, nil
}

func findModfile(child, pkgPath string) (string, error) {
	if !filepath.IsAbs(child) {
		return child, errors.New("directory must be absolute: " + child)
	}
	var first error
	dir := filepath.Clean(child)
	for {
		if _, err := os.Stat(dir + "/go.mod"); err == nil {
			pkg, err := modfilePath(filepath.Join(dir, "go.mod"))
			if err != nil {
				if first == nil {
					first = err
				}
			} else if pkg == pkgPath {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if len(parent) >= len(dir) {
			break
		}
		dir = parent
	}
	if first != nil {
		return child, fmt.Errorf("util: error finding go.mod for package %q "+
			"in directory: %q: %w", pkgPath, child, first)
	}
	return child, fmt.Errorf("util: failed to find go.mod for package %q "+
		"in directory: %q", pkgPath, child)
}

// ProjectRoot returns the root directory of the strutil module by searching
// the current working directory and its parents for its go.mod file.
func ProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findModfile(wd, ModulePath)
}

// TablesRoot returns the directory of the generated tables package.
func TablesRoot() (string, error) {
	root, err := ProjectRoot()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, "internal", "tables")
	if _, err := os.Stat(dir); err != nil {
		return "", err
	}
	return dir, nil
}
