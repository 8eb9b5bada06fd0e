// package formatter exports analysis results to various formats (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/followback/internal/models"
	"github.com/desertthunder/followback/internal/shared"
)

// DefaultCSVFilename is the download name of the CSV report.
const DefaultCSVFilename = "result.csv"

// CSVHeader is the first record of every CSV report.
var CSVHeader = []string{"Not Following Back", "Not Followed By"}

// Format names an export format accepted by [WriteExport].
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat resolves a user supplied format name; "md" and "txt" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (expected text, csv, json, or markdown)", shared.ErrInvalidFlag, s)
	}
}

// ExportToCSV converts an AnalysisResult to a two column CSV document.
//
// Row i pairs NotFollowingBack[i] with NotFollowedBy[i]; the shorter list is padded with empty fields.
// Records are separated by "\n" with no trailing newline. A nil result produces no document.
func ExportToCSV(result *models.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i := range result.Rows() {
		record := []string{at(result.NotFollowingBack, i), at(result.NotFollowedBy, i)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ExportToMarkdown converts an AnalysisResult to Markdown with one section per list
func ExportToMarkdown(result *models.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.WriteString("# Follow Analysis\n\n")
	buf.WriteString(fmt.Sprintf("**Not Following Back**: %d\n", len(result.NotFollowingBack)))
	buf.WriteString(fmt.Sprintf("**Not Followed By**: %d\n", len(result.NotFollowedBy)))

	writeMarkdownSection(&buf, "Not Following Back", result.NotFollowingBack)
	writeMarkdownSection(&buf, "Not Followed By", result.NotFollowedBy)

	return buf.Bytes(), nil
}

func writeMarkdownSection(buf *bytes.Buffer, title string, names []string) {
	buf.WriteString(fmt.Sprintf("\n## %s\n\n", title))
	if len(names) == 0 {
		buf.WriteString("_None_\n")
		return
	}
	for i, name := range names {
		buf.WriteString(fmt.Sprintf("%d. [%s](https://www.instagram.com/%s)\n", i+1, name, name))
	}
}

// ExportToText converts an AnalysisResult to plain text format
func ExportToText(result *models.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	writeTextSection(&buf, "Not Following Back", result.NotFollowingBack)
	buf.WriteString("\n")
	writeTextSection(&buf, "Not Followed By", result.NotFollowedBy)

	return buf.Bytes(), nil
}

func writeTextSection(buf *bytes.Buffer, title string, names []string) {
	buf.WriteString(fmt.Sprintf("%s (%d):\n", title, len(names)))
	for i, name := range names {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}
}

// ExportToJSON encodes an AnalysisResult in the same shape the backend returns
func ExportToJSON(result *models.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, nil
	}
	return shared.MarshalJSON(result, true)
}

// Export renders result in the given format.
func Export(result *models.AnalysisResult, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(result)
	case FormatJSON:
		return ExportToJSON(result)
	case FormatMarkdown:
		return ExportToMarkdown(result)
	case FormatText, "":
		return ExportToText(result)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteCSVExport writes the CSV report to path.
//
// Defaults to [DefaultCSVFilename]. A nil result writes nothing and returns an empty path.
func WriteCSVExport(result *models.AnalysisResult, path string) (string, error) {
	if result == nil {
		return "", nil
	}
	if path == "" {
		path = DefaultCSVFilename
	}

	csvData, err := ExportToCSV(result)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return path, nil
}

// WriteExport renders result in format and writes it to path.
//
// Defaults to result.{ext} for the format. A nil result writes nothing.
func WriteExport(result *models.AnalysisResult, format Format, path string) (string, error) {
	if result == nil {
		return "", nil
	}
	if path == "" {
		path = "result." + format.Extension()
	}

	data, err := Export(result, format)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatMarkdown:
		return "md"
	default:
		return "txt"
	}
}

func at(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return ""
}
