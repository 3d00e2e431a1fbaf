package scaffold

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/UnityEssentials/go-upmtools/internal/errors"
)

// MetaExtension is the reserved editor metadata extension that must never be
// copied from a template tree: the destination editor generates its own.
const MetaExtension = ".meta"

// ErrTemplateDirMissing indicates the configured template source directory
// does not exist. Callers log a warning and skip the copy. Its operation name
// is distinct from ordinary copy failures so errors.Is can tell them apart.
var ErrTemplateDirMissing = errors.New("template-dir-missing", fmt.Errorf("template source directory does not exist"))

// CopyTemplates recursively copies every file from srcDir into dstDir,
// skipping files with the reserved metadata extension, creating destination
// subdirectories as needed and overwriting same-named files.
func CopyTemplates(srcDir, dstDir string) error {
	info, err := os.Stat(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrTemplateDirMissing
		}
		return errors.New("copy-templates", err)
	}
	if !info.IsDir() {
		return ErrTemplateDirMissing
	}

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), MetaExtension) {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(dstDir, rel)

		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return copyFile(path, dst)
	})
	if err != nil {
		return errors.New("copy-templates", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
