package scaffold

import (
	"os"
	"path/filepath"

	"github.com/UnityEssentials/go-upmtools/internal/errors"
)

const licenseFileName = "LICENSE"

// RenameLicense renames an extensionless LICENSE file in dir to LICENSE.md so
// the editor imports it as a readable asset. A LICENSE that already carries an
// extension (LICENSE.txt, LICENSE.md) is left untouched. Absence of the file
// is not an error.
func RenameLicense(dir string) error {
	src := filepath.Join(dir, licenseFileName)
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.New("rename-license", err)
	}
	if info.IsDir() {
		return nil
	}

	if err := os.Rename(src, src+".md"); err != nil {
		return errors.New("rename-license", err)
	}
	return nil
}
