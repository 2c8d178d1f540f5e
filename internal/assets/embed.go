// Package assets embeds the files installed by the init command inside the
// gedgraph binary.
package assets

import _ "embed"

// DefaultConfig is the annotated starter gedgraph.yml written by init.
//
//go:embed gedgraph.yml
var DefaultConfig []byte
