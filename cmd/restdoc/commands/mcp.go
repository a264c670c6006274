package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/restdoc/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. It takes no flags;
// the server is configured through RESTDOC_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: restdoc mcp\n\n")
		Writef(fs.Output(), "Serve the generate and inspect tools over MCP on stdin/stdout.\n\n")
		Writef(fs.Output(), "Configuration is read from RESTDOC_* environment variables, e.g.:\n")
		Writef(fs.Output(), "  RESTDOC_CACHE_ENABLED=false      disable the result cache\n")
		Writef(fs.Output(), "  RESTDOC_COLLISION_STRATEGY=fail  default path collision strategy\n")
		Writef(fs.Output(), "  RESTDOC_ALLOW_PRIVATE_IPS=true   allow model URLs on private networks\n")
	}
	return fs
}

// HandleMCP executes the mcp command and blocks until the client
// disconnects or the process is interrupted.
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
