// Package main wires an Azure AI Foundry chat deployment to the
// Microsoft Learn MCP server for documentation-grounded answers.
package main

import (
	"fmt"
	"log"
	"os"
)

// main is the program entry point.
func main() {
	log.SetFlags(0)

	// Parse configuration; a missing required setting aborts startup
	// before any prompt is shown.
	config, err := ParseConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize application
	app, err := NewApp(config)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Enter interactive mode
	runInteractiveMode(app)
}
