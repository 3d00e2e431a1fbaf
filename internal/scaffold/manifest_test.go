package scaffold

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackageManifest(t *testing.T) {
	manifest := NewPackageManifest(ManifestConfig{
		PackageName:       "Foo",
		OrganizationName:  "UnityEssentials",
		AuthorName:        "UnityEssentials",
		UnityVersion:      "2021.3",
		Description:       "A test package",
		DependencyName:    "com.unity.nuget.newtonsoft-json",
		DependencyVersion: "3.0.2",
	})

	assert.Equal(t, "com.unityessentials.foo", manifest.Name)
	assert.Equal(t, "UnityEssentials Foo", manifest.DisplayName)
	assert.Equal(t, "1.0.0", manifest.Version)
	assert.Equal(t, "2021.3", manifest.Unity)
	assert.Equal(t, "UnityEssentials", manifest.Author.Name)
	assert.Equal(t, map[string]string{"com.unity.nuget.newtonsoft-json": "3.0.2"}, manifest.Dependencies)
}

func TestNewPackageManifestWithoutDependency(t *testing.T) {
	manifest := NewPackageManifest(ManifestConfig{
		PackageName:      "Foo",
		OrganizationName: "Org",
	})
	assert.Empty(t, manifest.Dependencies)
	assert.NotNil(t, manifest.Dependencies)
}

func TestWritePackageManifestOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"stale"}`), 0644))

	manifest := NewPackageManifest(ManifestConfig{
		PackageName:      "Timer",
		OrganizationName: "UnityEssentials",
	})
	require.NoError(t, WritePackageManifest(dir, manifest))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded PackageManifest
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "com.unityessentials.timer", decoded.Name)
}
