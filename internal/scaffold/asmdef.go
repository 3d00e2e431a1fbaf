// Package scaffold generates the auxiliary files written into a repository
// after a successful clone: the Unity assembly-definition descriptor, the
// package manifest, the license rename and the template-file copy.
package scaffold

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/UnityEssentials/go-upmtools/internal/errors"
)

// AsmdefExtension is the file extension of assembly-definition descriptors
const AsmdefExtension = ".asmdef"

// AssemblyDefinition mirrors the Unity .asmdef field shape. List fields
// serialize as empty arrays, never null, so the consuming editor accepts them.
type AssemblyDefinition struct {
	Name                  string   `json:"name"`
	RootNamespace         string   `json:"rootNamespace"`
	References            []string `json:"references"`
	IncludePlatforms      []string `json:"includePlatforms"`
	ExcludePlatforms      []string `json:"excludePlatforms"`
	AllowUnsafeCode       bool     `json:"allowUnsafeCode"`
	OverrideReferences    bool     `json:"overrideReferences"`
	PrecompiledReferences []string `json:"precompiledReferences"`
	AutoReferenced        bool     `json:"autoReferenced"`
	DefineConstraints     []string `json:"defineConstraints"`
	VersionDefines        []string `json:"versionDefines"`
	NoEngineReferences    bool     `json:"noEngineReferences"`
}

// NewAssemblyDefinition builds a descriptor with the fixed defaults:
// auto-referenced, no unsafe code, no overrides, all list fields empty.
func NewAssemblyDefinition(logicalName, rootNamespace string) AssemblyDefinition {
	return AssemblyDefinition{
		Name:                  logicalName,
		RootNamespace:         rootNamespace,
		References:            []string{},
		IncludePlatforms:      []string{},
		ExcludePlatforms:      []string{},
		AllowUnsafeCode:       false,
		OverrideReferences:    false,
		PrecompiledReferences: []string{},
		AutoReferenced:        true,
		DefineConstraints:     []string{},
		VersionDefines:        []string{},
		NoEngineReferences:    false,
	}
}

// PackageName derives the logical package name from a repository folder name
// by removing the first occurrence of the exclude substring (case-sensitive).
// An empty exclude substring is the identity.
func PackageName(folderName, exclude string) string {
	if exclude == "" {
		return folderName
	}
	return strings.Replace(folderName, exclude, "", 1)
}

// LogicalName composes the descriptor name as {organization}.{packageName}.
func LogicalName(organization, packageName string) string {
	return fmt.Sprintf("%s.%s", organization, packageName)
}

// WriteAssemblyDefinition removes any pre-existing descriptor files in dir and
// writes exactly one new descriptor named {logicalName}.asmdef.
func WriteAssemblyDefinition(dir string, def AssemblyDefinition) error {
	stale, err := filepath.Glob(filepath.Join(dir, "*"+AsmdefExtension))
	if err != nil {
		return errors.New("write-asmdef", err)
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			return errors.New("write-asmdef", err)
		}
	}

	data, err := json.MarshalIndent(def, "", "    ")
	if err != nil {
		return errors.New("write-asmdef", err)
	}

	path := filepath.Join(dir, def.Name+AsmdefExtension)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("write-asmdef", err)
	}
	return nil
}
