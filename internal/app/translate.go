package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"horse.fit/fanyi/internal/cli"
	"horse.fit/fanyi/internal/translation"
)

const (
	outputFormatHTML  = "html"
	outputFormatText  = "text"
	outputFormatTable = "table"
	outputFormatJSON  = "json"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", time.Minute, "Command timeout")
	from := fs.String("from", translation.AutoDetect, "Source language (host code, or auto to detect)")
	to := fs.String("to", "", "Target language (host code, for example: en, zh-CN)")
	provider := fs.String("provider", "", "Translation provider name (default: TRANSLATION_PROVIDER)")
	format := fs.String("format", outputFormatHTML, "Output format: html or text")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "translate requires the text to translate")
		printTranslateUsage()
		return 2
	}
	targetLang := strings.TrimSpace(*to)
	if targetLang == "" {
		fmt.Fprintln(os.Stderr, "--to is required")
		return 2
	}
	outputFormat, err := parseOutputFormat(*format, outputFormatHTML, outputFormatHTML, outputFormatText)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *timeout <= 0 {
		fmt.Fprintln(os.Stderr, "--timeout must be > 0")
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

	selected, err := svc.registry.Provider(*provider)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	sourceLang, err := translation.ResolveSourceLanguage(*from, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Source language: %v (pass --from)\n", err)
		return 1
	}

	resp, err := selected.Translate(ctx, translation.TranslateRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	})
	if err != nil {
		svc.logger.Error().Err(err).Str("provider", selected.Name()).Msg("translate failed")
		fmt.Fprintf(os.Stderr, "Translate failed: %v\n", err)
		return 1
	}

	switch outputFormat {
	case outputFormatText:
		writeTextSummary(os.Stdout, resp)
	default:
		fmt.Fprintln(os.Stdout, resp.Fragment)
	}

	if !resp.OK() {
		fmt.Fprintf(os.Stderr, "Translation failed: %v\n", resp.Failure)
		return 1
	}
	return 0
}

// writeTextSummary prints a plain rendition of a translation. Failures print
// the error instead.
func writeTextSummary(w io.Writer, resp *translation.TranslateResponse) {
	if resp == nil {
		return
	}
	if !resp.OK() {
		fmt.Fprintf(w, "%s -> %s: failed: %v\n", resp.SourceLang, resp.TargetLang, resp.Failure)
		return
	}

	fmt.Fprintf(w, "%s -> %s: %s\n", resp.SourceLang, resp.TargetLang, resp.Text)
	if resp.Pronunciation != "" {
		fmt.Fprintf(w, "  [%s]\n", resp.Pronunciation)
	}
	for _, sense := range resp.Senses {
		meanings := strings.Join(sense.Meanings, "; ")
		if sense.PartOfSpeech == "" {
			fmt.Fprintf(w, "  %s\n", meanings)
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", sense.PartOfSpeech, meanings)
	}
}

func parseOutputFormat(raw, defaultFormat string, allowed ...string) (string, error) {
	format := strings.TrimSpace(strings.ToLower(raw))
	if format == "" {
		format = strings.TrimSpace(strings.ToLower(defaultFormat))
	}
	for _, candidate := range allowed {
		if format == candidate {
			return format, nil
		}
	}
	return "", fmt.Errorf("--format must be %s", strings.Join(allowed, " or "))
}

func printTranslateUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  fanyi translate --to <lang> [--from auto] [--provider baidu] [--format html|text] [--env .env] [--timeout 1m] <text>")
}
