package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/erraggy/oacatalog"
	"github.com/erraggy/oacatalog/cmd/oacatalog/commands"
	"github.com/erraggy/oacatalog/internal/mcpserver"
)

// commandNames lists the subcommands offered as typo suggestions.
var commandNames = []string{"extract", "config", "mcp", "version", "help"}

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oacatalog v%s\n", oacatalog.Version())
		fmt.Println(oacatalog.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "extract":
		exitOnError(commands.HandleExtract(os.Args[2:]))
	case "config":
		exitOnError(commands.HandleConfig(os.Args[2:]))
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := mcpserver.Run(ctx)
		stop()
		exitOnError(err)
	default:
		commands.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			commands.Writef(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		commands.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		commands.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when none
// is within an edit distance of 2.
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
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oacatalog - API catalog extraction for OpenAPI documents

Usage:
  oacatalog <command> [options]

Commands:
  extract     Derive the API catalog from an OpenAPI document
  config      Print the effective naming configuration
  mcp         Serve catalog tools over MCP (stdio)
  version     Show version information
  help        Show this help message

Examples:
  oacatalog extract openapi.json
  oacatalog extract --format table --config naming.yaml openapi.yaml
  oacatalog config > naming.yaml

Environment:
  OACATALOG_CONFIG is read from the environment or a .env file in the
  working directory.

Run 'oacatalog <command> --help' for more information on a command.`)
}
