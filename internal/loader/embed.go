package loader

import _ "embed"

// DefaultSample is the bundled sample description used when no file is given
// on the command line. The same file serves as the loader's test fixture.
//
//go:embed testdata/sample.json
var DefaultSample []byte
