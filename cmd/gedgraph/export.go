package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dusk-indust/gedgraph/internal/export"
	"github.com/dusk-indust/gedgraph/internal/gedcom"
)

func runExport(opts gedcom.Options, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: gedgraph export <file.ged>")
	}
	path := args[0]

	db, err := gedcom.DecodeFile(path, opts)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	data := export.ExportDatabase(db)

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	_, err = os.Stdout.Write(append(out, '\n'))
	return err
}
