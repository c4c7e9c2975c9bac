package admin

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/Apurer/coffee-admin/internal/shared/listview"
)

type printer struct {
	out    io.Writer
	format string
	origin string
}

// emit writes v as JSON or YAML, or calls table for the table format.
func (p printer) emit(v any, table func(w io.Writer) error) error {
	switch p.format {
	case OutputJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.out, string(b))
		return err
	case OutputYAML:
		return writeYAML(p.out, v)
	}
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	if err := table(tw); err != nil {
		return err
	}
	return tw.Flush()
}

// writeYAML goes through JSON so the keys match the API field names, then
// re-encodes the node tree in block style.
func writeYAML(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return err
	}
	blockStyle(&doc)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// listPage is the JSON/YAML shape of a list command.
type listPage[T any] struct {
	Items      []T            `json:"items"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	Total      int            `json:"total"`
	Pages      []int          `json:"pages"`
	Tabs       map[string]int `json:"tabs,omitempty"`
}

func pageOf[T any](v listview.View[T]) listPage[T] {
	items := v.Rows.Items
	if items == nil {
		items = []T{}
	}
	return listPage[T]{
		Items:      items,
		Page:       v.Rows.Page,
		TotalPages: v.Rows.TotalPages,
		Total:      v.Rows.Total,
		Pages:      v.Window,
		Tabs:       v.TabCounts,
	}
}

// footer prints the page window with the current page bracketed.
func footer(w io.Writer, page, totalPages int, window []int) {
	parts := make([]string, 0, len(window))
	for _, n := range window {
		if n == page {
			parts = append(parts, "["+strconv.Itoa(n)+"]")
			continue
		}
		parts = append(parts, strconv.Itoa(n))
	}
	fmt.Fprintf(w, "\npage %d/%d\t%s\n", page, totalPages, strings.Join(parts, " "))
}

// won formats an amount with thousands separators.
func won(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
