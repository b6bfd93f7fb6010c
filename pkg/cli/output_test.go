package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type testTable []struct {
	Name string `json:"name" yaml:"name"`
	Size int    `json:"size" yaml:"size"`
}

func (t testTable) Header() []string { return []string{"NAME", "SIZE"} }

func (t testTable) Rows() [][]string {
	var rows [][]string
	for _, r := range t {
		rows = append(rows, []string{r.Name, strings.Repeat("#", r.Size)})
	}
	return rows
}

func sample() testTable {
	return testTable{{"tiny", 1}, {"medium-sized", 3}}
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Output(&buf, sample(), FormatJSON); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	var result []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if len(result) != 2 || result[0]["name"] != "tiny" {
		t.Errorf("result = %v", result)
	}
}

func TestOutput_YAML(t *testing.T) {
	for _, format := range []OutputFormat{FormatYAML, ""} {
		var buf bytes.Buffer
		if err := Output(&buf, sample(), format); err != nil {
			t.Fatalf("Output(%q) error: %v", format, err)
		}
		if !strings.Contains(buf.String(), "name: tiny") {
			t.Errorf("Output(%q) should contain 'name: tiny', got: %s", format, buf.String())
		}
	}
}

func TestOutput_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := Output(&buf, sample(), FormatTable); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	// Columns are aligned to the widest cell.
	if strings.Index(lines[0], "SIZE") != strings.Index(lines[1], "#") {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}
}

func TestOutput_TableUnsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := Output(&buf, map[string]int{"a": 1}, FormatTable); err == nil {
		t.Error("Output(map, table) = nil error")
	}
}

func TestOutput_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Output(&buf, "x", OutputFormat("xml")); err == nil {
		t.Error("Output(xml) = nil error")
	}
}
