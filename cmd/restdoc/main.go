package main

import (
	"fmt"
	"os"

	"github.com/erraggy/restdoc"
	"github.com/erraggy/restdoc/cmd/restdoc/commands"
	"github.com/erraggy/restdoc/internal/cliutil"
)

// commandNames lists the top-level commands for suggestions.
var commandNames = []string{"generate", "inspect", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var handler func([]string) error
	switch command {
	case "version", "-v", "--version":
		fmt.Println(restdoc.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "generate":
		handler = commands.HandleGenerate
	case "inspect":
		handler = commands.HandleInspect
	case "mcp":
		handler = commands.HandleMCP
	default:
		_, _ = fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			_, _ = fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		_, _ = fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err := handler(os.Args[2:]); err != nil {
		os.Exit(cliutil.Fail(os.Stderr, err))
	}
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	usage := `restdoc - OpenAPI documents from annotated REST resource classes

Usage:
  restdoc <command> [flags] [args]

Commands:
  generate    Generate an OpenAPI 3.0.3 document from a Source Model
  inspect     List the operations, schemas and diagnostics a model produces
  mcp         Serve generate and inspect as MCP tools over stdio
  version     Show version information
  help        Show this help message

Examples:
  restdoc generate -o ./docs keycloak.yaml
  restdoc inspect --kind PathCollision keycloak.yaml
  restdoc generate --format json - < model.json

Run 'restdoc <command> --help' for more information on a command.
`
	fmt.Print(usage)
}
