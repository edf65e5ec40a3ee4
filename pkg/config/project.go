package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"github.com/go-drift/motion/pkg/errors"
)

// Project is a loaded document together with where it came from.
type Project struct {
	Root       string
	ModulePath string
	// AppName keys persisted state. It comes from sinks.store.app, or
	// from the last element of the module path.
	AppName  string
	Document *Document
}

// Resolve loads motion.yaml from dir (if present) and resolves defaults.
// dir need not be a Go module; without go.mod the directory name is used.
func Resolve(dir string) (*Project, error) {
	doc, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return resolve(dir, doc), nil
}

// ResolveFile is Resolve for an explicitly named document. Defaults come
// from the document's directory.
func ResolveFile(path string) (*Project, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return resolve(filepath.Dir(path), doc), nil
}

func resolve(dir string, doc *Document) *Project {
	modPath, _ := modulePath(dir)

	appName := ""
	if doc.Sinks.Store != nil {
		appName = strings.TrimSpace(doc.Sinks.Store.App)
	}
	if appName == "" {
		appName = defaultAppName(modPath, dir)
	}

	return &Project{
		Root:       dir,
		ModulePath: modPath,
		AppName:    appName,
		Document:   doc,
	}
}

// FindProjectRoot walks up from dir to the nearest directory holding
// motion.yaml or go.mod.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range []string{DefaultFile, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Config("config.FindProjectRoot", ErrNoModule)
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", ErrNoModule
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	return sanitizeSegment(base)
}

// sanitizeSegment keeps lowercase letters, digits, '-' and '_' so the name
// is safe as a storage directory.
func sanitizeSegment(segment string) string {
	var out []rune
	for _, r := range strings.TrimSpace(segment) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		}
	}
	if len(out) == 0 {
		return "motion"
	}
	return string(out)
}
