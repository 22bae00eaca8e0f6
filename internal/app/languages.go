package app

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"horse.fit/fanyi/internal/fanyi"
	"horse.fit/fanyi/internal/translation"
)

type languageRow struct {
	Code   string `json:"code"`
	Baidu  string `json:"baidu"`
	Label  string `json:"label"`
	Native string `json:"native,omitempty"`
}

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	outputFormat, err := parseOutputFormat(*format, outputFormatTable, outputFormatTable, outputFormatJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := writeLanguages(os.Stdout, languageRows(), outputFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write languages: %v\n", err)
		return 1
	}
	return 0
}

func languageRows() []languageRow {
	table := fanyi.LanguageTable()
	rows := make([]languageRow, 0, len(table))
	for _, entry := range table {
		label := translation.LabelLanguage(entry.Code)
		rows = append(rows, languageRow{
			Code:   entry.Code,
			Baidu:  entry.Baidu,
			Label:  label.Label,
			Native: label.Native,
		})
	}
	return rows
}

func writeLanguages(w io.Writer, rows []languageRow, format string) error {
	if format == outputFormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tBAIDU\tLANGUAGE\tNATIVE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Code, row.Baidu, row.Label, row.Native)
	}
	return tw.Flush()
}
