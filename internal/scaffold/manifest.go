package scaffold

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/UnityEssentials/go-upmtools/internal/errors"
)

// ManifestFileName is the well-known package manifest filename
const ManifestFileName = "package.json"

// Author identifies the package author in the manifest
type Author struct {
	Name string `json:"name"`
}

// PackageManifest mirrors the package manifest field shape.
type PackageManifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	DisplayName  string            `json:"displayName"`
	Description  string            `json:"description"`
	Unity        string            `json:"unity"`
	Author       Author            `json:"author"`
	Dependencies map[string]string `json:"dependencies"`
}

// ManifestConfig carries the inputs for manifest generation.
type ManifestConfig struct {
	PackageName       string
	OrganizationName  string
	AuthorName        string
	UnityVersion      string
	Description       string
	DependencyName    string
	DependencyVersion string
}

// NewPackageManifest builds a manifest with the fixed shape:
// name "com.{org}.{package}" lowercased, displayName "{Org} {Package}",
// version pinned to 1.0.0, and a dependency map with exactly one entry when
// a dependency is configured.
func NewPackageManifest(cfg ManifestConfig) PackageManifest {
	deps := map[string]string{}
	if cfg.DependencyName != "" {
		deps[cfg.DependencyName] = cfg.DependencyVersion
	}
	return PackageManifest{
		Name:         strings.ToLower(fmt.Sprintf("com.%s.%s", cfg.OrganizationName, cfg.PackageName)),
		Version:      "1.0.0",
		DisplayName:  fmt.Sprintf("%s %s", cfg.OrganizationName, cfg.PackageName),
		Description:  cfg.Description,
		Unity:        cfg.UnityVersion,
		Author:       Author{Name: cfg.AuthorName},
		Dependencies: deps,
	}
}

// WritePackageManifest writes the manifest to package.json in dir,
// overwriting any existing file.
func WritePackageManifest(dir string, manifest PackageManifest) error {
	data, err := json.MarshalIndent(manifest, "", "    ")
	if err != nil {
		return errors.New("write-manifest", err)
	}

	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("write-manifest", err)
	}
	return nil
}
