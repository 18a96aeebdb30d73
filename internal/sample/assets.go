package sample

import (
	"bytes"
	"embed"
	"fmt"
	"io"
)

//go:embed assets
var assetsFS embed.FS

// asset returns a reader over one embedded demo file.
func asset(name string) (io.Reader, error) {
	data, err := assetsFS.ReadFile("assets/" + name)
	if err != nil {
		return nil, fmt.Errorf("read demo asset %s: %w", name, err)
	}
	return bytes.NewReader(data), nil
}
