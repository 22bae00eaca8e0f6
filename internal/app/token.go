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
	"horse.fit/fanyi/internal/config"
)

func runToken(args []string) int {
	if len(args) == 0 {
		printTokenUsage()
		return 2
	}

	action := strings.ToLower(strings.TrimSpace(args[0]))
	switch action {
	case "show", "refresh":
	default:
		fmt.Fprintf(os.Stderr, "Unknown token action: %s\n\n", args[0])
		printTokenUsage()
		return 2
	}

	fs := flag.NewFlagSet("token "+action, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "token %s does not take positional arguments\n", action)
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	svc, err := bootstrap(ctx, envLoader, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer svc.Close()

	if svc.cfg.TokenStoreKind() == config.TokenStoreMemory {
		fmt.Fprintf(os.Stderr, "token %s needs a durable store: set TOKEN_STORE=%s or TOKEN_STORE=%s (TOKEN_STORE=%s does not outlive this process)\n",
			action, config.TokenStoreRedis, config.TokenStorePostgres, config.TokenStoreMemory)
		return 2
	}

	store := svc.provider.Store()
	if action == "refresh" {
		token, err := svc.provider.RefreshToken(ctx)
		if err != nil {
			svc.logger.Error().Err(err).Msg("token refresh failed")
			fmt.Fprintf(os.Stderr, "Token refresh failed: %v\n", err)
			return 1
		}
		fmt.Printf("token refreshed key=%s token=%s gtk=%s store=%s\n", store.Key(), token.Value, token.Secret, svc.cfg.TokenStoreKind())
		return 0
	}

	token, ok, err := store.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read token: %v\n", err)
		return 1
	}
	if !ok {
		fmt.Printf("no token stored key=%s store=%s\n", store.Key(), svc.cfg.TokenStoreKind())
		return 1
	}
	fmt.Printf("key=%s token=%s gtk=%s store=%s\n", store.Key(), token.Value, token.Secret, svc.cfg.TokenStoreKind())
	return 0
}

func printTokenUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  fanyi token show [--env .env] [--timeout 30s]")
	fmt.Fprintln(os.Stderr, "  fanyi token refresh [--env .env] [--timeout 30s]")
}
