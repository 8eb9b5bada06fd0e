package formatter

import (
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/followback/internal/models"
	"github.com/desertthunder/followback/internal/shared"
	th "github.com/desertthunder/followback/internal/testing"
)

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		t.Run("Padded Rows", func(t *testing.T) {
			result := &models.AnalysisResult{
				NotFollowingBack: []string{"carol"},
				NotFollowedBy:    []string{"alice", "dave"},
			}

			data, err := ExportToCSV(result)
			if err != nil {
				t.Fatalf("ExportToCSV failed: %v", err)
			}

			want := "Not Following Back,Not Followed By\ncarol,alice\n,dave"
			if string(data) != want {
				t.Errorf("ExportToCSV() =\n%q\nwant\n%q", data, want)
			}
		})

		t.Run("Row Count Matches Longer List", func(t *testing.T) {
			tests := []struct {
				name string
				a, b []string
			}{
				{"both empty", []string{}, []string{}},
				{"left longer", []string{"a", "b", "c"}, []string{"x"}},
				{"right longer", []string{"a"}, []string{"x", "y", "z", "w"}},
				{"equal", []string{"a", "b"}, []string{"x", "y"}},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					data, err := ExportToCSV(&models.AnalysisResult{NotFollowingBack: tt.a, NotFollowedBy: tt.b})
					if err != nil {
						t.Fatalf("ExportToCSV failed: %v", err)
					}

					records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
					if err != nil {
						t.Fatalf("output is not valid CSV: %v", err)
					}

					wantRows := 1 + max(len(tt.a), len(tt.b))
					if len(records) != wantRows {
						t.Fatalf("expected %d records, got %d", wantRows, len(records))
					}

					var left, right []string
					for _, rec := range records[1:] {
						if rec[0] != "" {
							left = append(left, rec[0])
						}
						if rec[1] != "" {
							right = append(right, rec[1])
						}
					}
					if strings.Join(left, "|") != strings.Join(tt.a, "|") {
						t.Errorf("first column = %v, want %v", left, tt.a)
					}
					if strings.Join(right, "|") != strings.Join(tt.b, "|") {
						t.Errorf("second column = %v, want %v", right, tt.b)
					}
				})
			}
		})

		t.Run("No Trailing Newline", func(t *testing.T) {
			data, _ := ExportToCSV(&models.AnalysisResult{NotFollowingBack: []string{"a"}})
			if strings.HasSuffix(string(data), "\n") {
				t.Errorf("expected no trailing newline, got %q", data)
			}
		})

		t.Run("Header Only For Empty Result", func(t *testing.T) {
			data, _ := ExportToCSV(&models.AnalysisResult{})
			if string(data) != "Not Following Back,Not Followed By" {
				t.Errorf("unexpected output %q", data)
			}
		})

		t.Run("Quotes Fields With Commas", func(t *testing.T) {
			data, _ := ExportToCSV(&models.AnalysisResult{NotFollowingBack: []string{`we,ird"name`}})
			if !strings.Contains(string(data), `"we,ird""name",`) {
				t.Errorf("expected quoted field, got %q", data)
			}
		})

		t.Run("Nil Result", func(t *testing.T) {
			data, err := ExportToCSV(nil)
			if err != nil || data != nil {
				t.Errorf("expected nil, nil; got %q, %v", data, err)
			}
		})
	})

	result := &models.AnalysisResult{
		NotFollowingBack: []string{"carol"},
		NotFollowedBy:    []string{"alice"},
	}

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(result)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Follow Analysis",
			"**Not Following Back**: 1",
			"## Not Followed By",
			"1. [carol](https://www.instagram.com/carol)",
			"1. [alice](https://www.instagram.com/alice)",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got: %s", want, output)
			}
		}

		t.Run("empty section", func(t *testing.T) {
			data, _ := ExportToMarkdown(&models.AnalysisResult{})
			if strings.Count(string(data), "_None_") != 2 {
				t.Errorf("expected placeholder for both sections, got: %s", data)
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(result)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Not Following Back (1):\n1. carol") {
			t.Errorf("Text missing first list, got: %s", output)
		}
		if !strings.Contains(output, "Not Followed By (1):\n1. alice") {
			t.Errorf("Text missing second list, got: %s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(result)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, `"not_following_back": [`) {
			t.Errorf("JSON missing not_following_back key: %s", output)
		}
		if !strings.Contains(output, `"alice"`) {
			t.Errorf("JSON missing alice: %s", output)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"txt", FormatText},
		{"CSV", FormatCSV},
		{"json", FormatJSON},
		{"md", FormatMarkdown},
		{" markdown ", FormatMarkdown},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Errorf("ParseFormat(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
}

func TestWriters(t *testing.T) {
	result := &models.AnalysisResult{
		NotFollowingBack: []string{"carol"},
		NotFollowedBy:    []string{"alice"},
	}

	t.Run("WriteCSVExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			t.Chdir(t.TempDir())

			path, err := WriteCSVExport(result, "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}
			if path != "result.csv" {
				t.Errorf("Expected 'result.csv', got '%s'", path)
			}

			th.AssertFileExists(t, path)
			if content := th.MustReadFile(t, path); content != "Not Following Back,Not Followed By\ncarol,alice" {
				t.Errorf("unexpected CSV content %q", content)
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "custom.csv")

			got, err := WriteCSVExport(result, path)
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}
			if got != path {
				t.Errorf("Expected %s, got %s", path, got)
			}
			th.AssertFileExists(t, path)
		})

		t.Run("NilResult", func(t *testing.T) {
			t.Chdir(t.TempDir())

			path, err := WriteCSVExport(nil, "")
			if err != nil || path != "" {
				t.Errorf("expected no-op, got %q, %v", path, err)
			}
		})

		t.Run("UnwritablePath", func(t *testing.T) {
			_, err := WriteCSVExport(result, filepath.Join(t.TempDir(), "missing", "result.csv"))
			if err == nil {
				t.Error("expected error for missing directory")
			}
		})
	})

	t.Run("WriteExport", func(t *testing.T) {
		t.Chdir(t.TempDir())

		for _, format := range []Format{FormatText, FormatJSON, FormatMarkdown, FormatCSV} {
			path, err := WriteExport(result, format, "")
			if err != nil {
				t.Fatalf("WriteExport(%s) failed: %v", format, err)
			}
			if path != "result."+format.Extension() {
				t.Errorf("unexpected default path %s for %s", path, format)
			}
			th.AssertFileExists(t, path)
		}

		if _, err := WriteExport(result, Format("xml"), "out.xml"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}
