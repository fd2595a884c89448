package lazy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
	"github.com/sahilm/fuzzy"
)

// Record is a row of a [Table] with every [Deparse] cell rendered.
type Record struct {
	Name  string `json:"name"  yaml:"name"`
	Envir string `json:"envir" yaml:"envir"`
	Expr  string `json:"expr"  yaml:"expr"`
	Value string `json:"value" yaml:"value"`
}

// Records returns the rendered rows of the table.
func (t *Table) Records() []Record {
	recs := make([]Record, t.Len())

	for i := range recs {
		recs[i] = Record{
			Name:  t.Name[i],
			Envir: DeparseValue(t.Envir[i]),
			Expr:  DeparseValue(t.Expr[i]),
			Value: DeparseValue(t.Value[i]),
		}
	}

	return recs
}

// Styles.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	indexStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Format writes the table as a bordered text grid. The leftmost column holds
// the row index.
func (t *Table) Format(_ context.Context, w io.Writer) error {
	headers := append([]string{"#"}, Columns[:]...)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle

			case col == 0:
				return indexStyle

			default:
				return cellStyle
			}
		})

	for i, r := range t.Records() {
		tbl.Row(strconv.Itoa(i+1), r.Name, r.Envir, r.Expr, r.Value)
	}

	_, err := fmt.Fprintln(w, tbl.Render())

	return err
}

// FormatJSON writes the table rows as a JSON array.
func (t *Table) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(t.Records(), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(t.Records())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the table rows as a YAML sequence.
func (t *Table) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, t.Records(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// Filter returns the rows whose name fuzzy-matches pattern, best match
// first. An empty pattern returns t itself.
func (t *Table) Filter(pattern string) *Table {
	if pattern == "" {
		return t
	}

	matches := fuzzy.Find(pattern, t.Name)

	index := make([]int, len(matches))
	for i, m := range matches {
		index[i] = m.Index
	}

	return t.subset(index)
}

// Text is a cell that was already rendered. It deparses to itself.
type Text string

// Deparse returns t unchanged.
func (t Text) Deparse() string { return string(t) }

// TableOf rebuilds a table from rendered records, such as those read back
// from storage. Every cell is a [Text].
func TableOf(recs []Record) *Table {
	t := makeTable(len(recs))

	for _, r := range recs {
		t.Name = append(t.Name, r.Name)
		t.Envir = append(t.Envir, Text(r.Envir))
		t.Expr = append(t.Expr, Text(r.Expr))
		t.Value = append(t.Value, Text(r.Value))
	}

	return t
}
