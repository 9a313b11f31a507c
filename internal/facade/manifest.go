package facade

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"lsifgo/internal/core/config"
	"lsifgo/internal/core/ports"
)

// Manifests implements ports.ManifestReader by walking upward from a
// source file looking for a go.mod or package.json, grounded on the
// teacher's GoResolver.FindGoMod upward directory search (adapted here
// to locate a package manifest instead of a module root, and to also
// recognize package.json for JS/TS workspaces).
type Manifests struct {
	cfg   *config.Config
	cache map[string]manifestEntry
}

type manifestEntry struct {
	dir      string
	manifest ports.PackageManifest
	ok       bool
}

func NewManifests(cfg *config.Config) *Manifests {
	return &Manifests{cfg: cfg, cache: make(map[string]manifestEntry)}
}

var goModuleRe = regexp.MustCompile(`(?m)^module\s+(\S+)`)
var goRequireRe = regexp.MustCompile(`(?m)^\s*([^\s]+)\s+(v[^\s]+)`)

func (m *Manifests) FindManifest(file string) (string, ports.PackageManifest, bool) {
	dir := filepath.Dir(file)
	if cached, ok := m.cache[dir]; ok {
		return cached.dir, cached.manifest, cached.ok
	}

	for current := dir; ; {
		if manifest, ok := readGoMod(filepath.Join(current, "go.mod")); ok {
			entry := manifestEntry{dir: current, manifest: manifest, ok: true}
			m.cache[dir] = entry
			return current, manifest, true
		}
		if manifest, ok := readPackageJSON(filepath.Join(current, "package.json")); ok {
			entry := manifestEntry{dir: current, manifest: manifest, ok: true}
			m.cache[dir] = entry
			return current, manifest, true
		}

		parent := filepath.Dir(current)
		if parent == current || !strings.HasPrefix(current, m.cfg.WorkspaceRoot) {
			break
		}
		current = parent
	}

	m.cache[dir] = manifestEntry{}
	return "", ports.PackageManifest{}, false
}

// WorkspaceManifest returns the manifest bound to project by
// `published_packages` configuration, if any.
func (m *Manifests) WorkspaceManifest(project string) (ports.PackageManifest, bool) {
	for _, pub := range m.cfg.PublishedPackages {
		if pub.Project != project {
			continue
		}
		path := pub.Manifest
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.cfg.WorkspaceRoot, path)
		}
		if strings.HasSuffix(path, "go.mod") {
			if manifest, ok := readGoMod(path); ok {
				return manifest, true
			}
		}
		if strings.HasSuffix(path, "package.json") {
			if manifest, ok := readPackageJSON(path); ok {
				return manifest, true
			}
		}
	}
	return ports.PackageManifest{}, false
}

func readGoMod(path string) (ports.PackageManifest, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ports.PackageManifest{}, false
	}
	match := goModuleRe.FindSubmatch(data)
	if len(match) < 2 {
		return ports.PackageManifest{}, false
	}
	modulePath := string(match[1])

	deps := make(map[string]string)
	if block := requireBlock(data); block != "" {
		for _, line := range goRequireRe.FindAllStringSubmatch(block, -1) {
			deps[line[1]] = line[2]
		}
	}

	repo := modulePath
	if strings.HasPrefix(modulePath, "github.com/") || strings.HasPrefix(modulePath, "gitlab.com/") {
		repo = "https://" + modulePath
	}

	return ports.PackageManifest{
		Name:         modulePath,
		Manager:      "go",
		Repository:   repo,
		Dependencies: deps,
	}, true
}

func requireBlock(data []byte) string {
	text := string(data)
	if start := strings.Index(text, "require ("); start >= 0 {
		if end := strings.Index(text[start:], ")"); end >= 0 {
			return text[start : start+end]
		}
	}
	// Single-line form: "require module v1.2.3" (no parens).
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "require ") {
			lines = append(lines, strings.TrimPrefix(strings.TrimSpace(line), "require "))
		}
	}
	return strings.Join(lines, "\n")
}

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Main            string            `json:"main"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func readPackageJSON(path string) (ports.PackageManifest, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ports.PackageManifest{}, false
	}
	var parsed packageJSON
	if err := json.Unmarshal(data, &parsed); err != nil || parsed.Name == "" {
		return ports.PackageManifest{}, false
	}

	deps := make(map[string]string, len(parsed.Dependencies)+len(parsed.DevDependencies))
	for name, version := range parsed.Dependencies {
		deps[name] = version
	}
	for name, version := range parsed.DevDependencies {
		deps[name] = version
	}

	var mainEntries []string
	if parsed.Main != "" {
		mainEntries = []string{parsed.Main}
	}

	return ports.PackageManifest{
		Name:         parsed.Name,
		Version:      parsed.Version,
		Manager:      "npm",
		MainEntries:  mainEntries,
		Dependencies: deps,
	}, true
}
