package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dusk-indust/gedgraph/internal/assets"
)

// mcpConfig represents the structure of a .mcp.json file.
type mcpConfig struct {
	MCPServers map[string]json.RawMessage `json:"mcpServers"`
}

// gedgraphMCPEntry is the MCP server configuration for the gedgraph binary.
var gedgraphMCPEntry = json.RawMessage(`{
  "type": "stdio",
  "command": "gedgraph",
  "args": ["--serve-mcp"]
}`)

// runInit writes the starter configuration and MCP entry into the target
// project directory.
func runInit(projectRoot string, force bool) error {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolving project root: %w", err)
	}

	cfgPath := filepath.Join(abs, "gedgraph.yml")
	mcpPath := filepath.Join(abs, ".mcp.json")

	if _, err := os.Stat(cfgPath); err == nil && !force {
		fmt.Printf("  skipped %s (exists, use --force to overwrite)\n", dotRelative(abs, cfgPath))
	} else {
		if err := os.WriteFile(cfgPath, assets.DefaultConfig, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", cfgPath, err)
		}
		fmt.Printf("  created %s\n", dotRelative(abs, cfgPath))
	}

	if err := mergeMCPConfig(mcpPath, force); err != nil {
		return err
	}

	fmt.Println("\nSetup complete. Edit gedgraph.yml to adjust parsing options.")
	return nil
}

// mergeMCPConfig creates or merges the gedgraph entry into .mcp.json.
func mergeMCPConfig(mcpPath string, force bool) error {
	var cfg mcpConfig

	data, err := os.ReadFile(mcpPath)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", mcpPath, err)
		}
	}

	if cfg.MCPServers == nil {
		cfg.MCPServers = make(map[string]json.RawMessage)
	}

	if _, exists := cfg.MCPServers["gedgraph"]; exists && !force {
		fmt.Printf("  skipped .mcp.json gedgraph entry (exists, use --force to overwrite)\n")
		return nil
	}

	cfg.MCPServers["gedgraph"] = gedgraphMCPEntry

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling .mcp.json: %w", err)
	}

	if err := os.WriteFile(mcpPath, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", mcpPath, err)
	}

	action := "created"
	if data != nil {
		action = "updated"
	}
	fmt.Printf("  %s .mcp.json with gedgraph MCP server\n", action)
	return nil
}

// dotRelative returns a display path relative to the project root, prefixed
// with "./".
func dotRelative(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return "./" + rel
}
