//go:build !cgo

package main

import "errors"

// The diagram and lookup commands read the KuzuDB-persisted graph, which is
// only available in cgo builds.

func runDiagram(string) error {
	return errors.New("the diagram command requires a cgo build")
}

func runLookup(string, []string) error {
	return errors.New("the lookup command requires a cgo build")
}
