package detect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Language identifies the project's primary language.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangGo         Language = "go"
	LangUnknown    Language = "unknown"
)

// Framework identifies a recognized application framework.
type Framework string

const (
	FrameworkNext    Framework = "next"
	FrameworkVite    Framework = "vite"
	FrameworkExpress Framework = "express"
	FrameworkReact   Framework = "react"
	FrameworkNode    Framework = "node"
	FrameworkDjango  Framework = "django"
	FrameworkFlask   Framework = "flask"
	FrameworkFastAPI Framework = "fastapi"
	FrameworkPython  Framework = "python"
	FrameworkGo      Framework = "go"
	FrameworkUnknown Framework = "unknown"
)

// PackageManager identifies the project's package manager.
type PackageManager string

const (
	ManagerNpm     PackageManager = "npm"
	ManagerYarn    PackageManager = "yarn"
	ManagerPnpm    PackageManager = "pnpm"
	ManagerBun     PackageManager = "bun"
	ManagerPip     PackageManager = "pip"
	ManagerPoetry  PackageManager = "poetry"
	ManagerUv      PackageManager = "uv"
	ManagerGo      PackageManager = "go"
	ManagerUnknown PackageManager = "unknown"
)

// Project is the detection result for one directory.
type Project struct {
	Language       Language
	Framework      Framework
	PackageManager PackageManager
}

// packageJSON is the subset of package.json detection cares about.
type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func (p packageJSON) has(name string) bool {
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.DevDependencies[name]
	return ok
}

func exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

// Detect inspects a project directory and returns its language, framework,
// and package manager. Heuristics are intentionally shallow: manifest files
// and lockfiles only, no source parsing. Unknowns are reported as such, not
// as errors.
func Detect(dir string) (Project, error) {
	if exists(dir, "package.json") {
		return detectNode(dir)
	}
	if exists(dir, "pyproject.toml") || exists(dir, "requirements.txt") {
		return detectPython(dir), nil
	}
	if exists(dir, "go.mod") {
		return Project{Language: LangGo, Framework: FrameworkGo, PackageManager: ManagerGo}, nil
	}
	return Project{Language: LangUnknown, Framework: FrameworkUnknown, PackageManager: ManagerUnknown}, nil
}

func detectNode(dir string) (Project, error) {
	project := Project{Language: LangJavaScript}

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return project, fmt.Errorf("failed to read package.json: %w", err)
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return project, fmt.Errorf("failed to parse package.json: %w", err)
	}

	if pkg.has("typescript") || exists(dir, "tsconfig.json") {
		project.Language = LangTypeScript
	}

	// Order matters: next implies react, vite often accompanies react.
	switch {
	case pkg.has("next"):
		project.Framework = FrameworkNext
	case pkg.has("vite"):
		project.Framework = FrameworkVite
	case pkg.has("express"):
		project.Framework = FrameworkExpress
	case pkg.has("react"):
		project.Framework = FrameworkReact
	default:
		project.Framework = FrameworkNode
	}

	switch {
	case exists(dir, "bun.lockb") || exists(dir, "bun.lock"):
		project.PackageManager = ManagerBun
	case exists(dir, "pnpm-lock.yaml"):
		project.PackageManager = ManagerPnpm
	case exists(dir, "yarn.lock"):
		project.PackageManager = ManagerYarn
	default:
		project.PackageManager = ManagerNpm
	}
	return project, nil
}

func detectPython(dir string) Project {
	project := Project{Language: LangPython, Framework: FrameworkPython, PackageManager: ManagerPip}

	switch {
	case exists(dir, "uv.lock"):
		project.PackageManager = ManagerUv
	case exists(dir, "poetry.lock"):
		project.PackageManager = ManagerPoetry
	}

	// Framework hints from requirements; pyproject parsing is skipped on
	// purpose, requirements.txt covers the common cases.
	if data, err := os.ReadFile(filepath.Join(dir, "requirements.txt")); err == nil {
		reqs := string(data)
		switch {
		case containsPackage(reqs, "django"):
			project.Framework = FrameworkDjango
		case containsPackage(reqs, "fastapi"):
			project.Framework = FrameworkFastAPI
		case containsPackage(reqs, "flask"):
			project.Framework = FrameworkFlask
		}
	}
	return project
}

// containsPackage looks for a requirement line naming the package, ignoring
// case, extras, and version specifiers.
func containsPackage(requirements, name string) bool {
	for _, line := range strings.Split(requirements, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if i := strings.IndexAny(line, "=><~![;# \t"); i >= 0 {
			line = line[:i]
		}
		if line == name {
			return true
		}
	}
	return false
}
