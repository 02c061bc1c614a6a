package main

import (
	"fmt"
	"os"

	"github.com/wextkit/manifesttools"
	"github.com/wextkit/manifesttools/cmd/manifesttools/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("manifesttools v%s\n", manifesttools.Version())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		if err := commands.HandleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "api":
		if err := commands.HandleAPI(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`manifesttools - Browser Extension Manifest Tools

Usage:
  manifesttools <command> [options]

Commands:
  validate    Validate an extension document against its schema variant
  api         Query extension API availability against the compatibility table
  mcp         Run an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  manifesttools validate manifest.json
  manifesttools validate -kind theme theme/manifest.json
  manifesttools validate -mv3 -format json manifest.json
  manifesttools api -mv 3 tabs.executeScript
  manifesttools api -lint -table custom.yaml

Run 'manifesttools <command> --help' for more information on a command.`)
}
