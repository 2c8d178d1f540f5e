//go:build !cgo

package mcptools

import (
	"context"
	"errors"

	"github.com/dusk-indust/gedgraph/internal/graph"
)

// persistGraph requires the KuzuDB driver, which is only available in cgo
// builds.
func persistGraph(_ context.Context, _ graph.Store, _ string) error {
	return errors.New("graph persistence requires a cgo build")
}
