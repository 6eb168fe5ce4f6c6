package seed

import (
	"bytes"
	_ "embed"
)

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the built-in fixture used when no seed file is configured.
func Demo() (File, error) {
	return Load(bytes.NewReader(demoYAML))
}
