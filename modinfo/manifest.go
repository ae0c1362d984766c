// Package modinfo handles the two pieces of per-project metadata that
// live outside the parse tree itself: the project manifest file every
// wisp module carries, and the function-signature table a compiled
// module embeds for other modules to read back out.
//
// Grounded on the teacher's root `main.go` (the `tawaModule` manifest
// struct and its `init`/`build` command handling) and `typeinfo.go` +
// `reader/reader.go` (the embedded-typeinfo round-trip), renamed to
// wisp's vocabulary.
package modinfo

import (
	"os"

	"gopkg.in/yaml.v2"
)

// ManifestFile is the name of the per-project manifest, mirroring the
// teacher's "Tawa Module Information".
const ManifestFile = "Wisp Module Information"

// Manifest is the per-project manifest, marshaled with yaml.v2 exactly as
// the teacher's tawaModule was.
type Manifest struct {
	Package string `yaml:"Package"`
}

// WriteManifest creates ManifestFile in dir, failing if it already
// exists (mirrors the teacher's `init` command, which always creates a
// fresh file rather than overwriting one).
func WriteManifest(dir string, m Manifest) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	fi, err := os.OpenFile(dir+string(os.PathSeparator)+ManifestFile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return err
	}
	defer fi.Close()
	_, err = fi.Write(out)
	return err
}

// ReadManifest reads and unmarshals ManifestFile from dir.
func ReadManifest(dir string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(dir + string(os.PathSeparator) + ManifestFile)
	if err != nil {
		return m, err
	}
	err = yaml.Unmarshal(data, &m)
	return m, err
}
