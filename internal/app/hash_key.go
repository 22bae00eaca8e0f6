package app

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"horse.fit/fanyi/internal/auth"
)

// runHashKey prints the bcrypt hash for API_KEY_HASH. The key is read from
// the first argument or, when absent, from the first line of stdin.
func runHashKey(args []string) int {
	fs := flag.NewFlagSet("hash-key", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "hash-key takes at most one argument")
		return 2
	}

	key := fs.Arg(0)
	if key == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "hash-key requires a key argument or a key on stdin")
			return 2
		}
		key = line
	}

	hash, err := auth.HashAPIKey(strings.TrimSpace(key))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash key: %v\n", err)
		return 1
	}
	fmt.Println(hash)
	return 0
}
