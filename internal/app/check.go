package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/fanyi/internal/cli"
	"horse.fit/fanyi/internal/translation"
)

// runCheck exits 0 when the pair is eligible and 1 when it is not.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	from := fs.String("from", "", "Source language (host code)")
	to := fs.String("to", "", "Target language (host code)")
	provider := fs.String("provider", "", "Translation provider name (default: TRANSLATION_PROVIDER)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "check does not take positional arguments")
		return 2
	}

	req := translation.TranslateRequest{
		SourceLang: strings.TrimSpace(*from),
		TargetLang: strings.TrimSpace(*to),
	}
	if req.SourceLang == "" || req.TargetLang == "" {
		fmt.Fprintln(os.Stderr, "--from and --to are required")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc, err := bootstrap(ctx, envLoader, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer svc.Close()

	selected, err := svc.registry.Provider(*provider)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	eligible := selected.CanTranslate(req)
	fmt.Printf("provider=%s from=%s to=%s eligible=%t\n", selected.Name(), req.SourceLang, req.TargetLang, eligible)
	if !eligible {
		return 1
	}
	return 0
}
