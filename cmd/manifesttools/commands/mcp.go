package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/wextkit/manifesttools/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: manifesttools mcp\n\n")
		Writef(fs.Output(), "Run an MCP (Model Context Protocol) server over stdio, exposing the\n")
		Writef(fs.Output(), "validate and api_support tools to MCP clients.\n\n")
		Writef(fs.Output(), "Example client configuration:\n")
		Writef(fs.Output(), "  {\"mcpServers\": {\"manifesttools\": {\"command\": \"manifesttools\", \"args\": [\"mcp\"]}}}\n")
	}

	return fs
}

// HandleMCP executes the mcp command: it blocks serving stdio until the
// client disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcpserver.Run(ctx)
}
