package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "translate":
		return runTranslate(args[1:])
	case "check":
		return runCheck(args[1:])
	case "languages":
		return runLanguages(args[1:])
	case "token":
		return runToken(args[1:])
	case "hash-key":
		return runHashKey(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "fanyi CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  fanyi <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  translate  Translate text and print the rendered fragment")
	fmt.Fprintln(os.Stderr, "  check      Report whether a language pair can be translated")
	fmt.Fprintln(os.Stderr, "  languages  List supported languages and their Baidu codes")
	fmt.Fprintln(os.Stderr, "  token      Show or refresh the cached session token")
	fmt.Fprintln(os.Stderr, "  hash-key   Print the bcrypt hash of an API key for API_KEY_HASH")
	fmt.Fprintln(os.Stderr, "  serve      Start Echo API server")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"fanyi <command> -h\" for command-specific flags.")
}
