package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
)

// LocalFolderNames walks the target root recursively and collects the name of
// every subdirectory at any depth. A repository whose folder name appears
// anywhere under the root counts as already cloned, not just at the top level.
// Git internals are not descended into.
//
// A missing root yields an empty set, not an error: nothing exists locally yet.
func LocalFolderNames(root string) (map[string]struct{}, error) {
	names := make(map[string]struct{})

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return names, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return names, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		names[d.Name()] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}
