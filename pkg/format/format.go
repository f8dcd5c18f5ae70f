// Package format renders command output as JSON, YAML, a plain table or
// markdown. Formatters are looked up by name so commands can expose a
// single --output flag.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Table is tabular data prepared by a command for the table and markdown
// renderers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Tabler is implemented by values that can render themselves as a table.
type Tabler interface {
	Table() Table
}

// Formatter renders a value to a string.
type Formatter interface {
	Format(v interface{}) (string, error)
}

// Names of the registered formatters.
const (
	JSON     = "json"
	YAML     = "yaml"
	TableFmt = "table"
	Markdown = "markdown"
)

// New returns the formatter registered under name.
func New(name string) (Formatter, error) {
	switch name {
	case JSON, "":
		return jsonFormatter{}, nil
	case YAML:
		return yamlFormatter{}, nil
	case TableFmt:
		return tableFormatter{}, nil
	case Markdown:
		return markdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use json, yaml, table or markdown)", name)
	}
}

type jsonFormatter struct{}

func (jsonFormatter) Format(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type yamlFormatter struct{}

func (yamlFormatter) Format(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func asTable(v interface{}) (Table, error) {
	switch t := v.(type) {
	case Table:
		return t, nil
	case Tabler:
		return t.Table(), nil
	default:
		return Table{}, fmt.Errorf("value of type %T cannot be rendered as a table", v)
	}
}

type tableFormatter struct{}

func (tableFormatter) Format(v interface{}) (string, error) {
	t, err := asTable(v)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type markdownFormatter struct{}

func (markdownFormatter) Format(v interface{}) (string, error) {
	t, err := asTable(v)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("| " + strings.Join(t.Headers, " | ") + " |\n")
	sep := make([]string, len(t.Headers))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range t.Rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return b.String(), nil
}
