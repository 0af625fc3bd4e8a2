package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bndr/gotabulate"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oacatalog/catalog"
)

// tableHeaders are the columns of the table format.
var tableHeaders = []string{"API", "METHOD", "MARKET", "PREFIX", "PATH", "PARAMS", "BODY", "SOURCE"}

// RenderCatalog writes cat to w in the given format.
func RenderCatalog(w io.Writer, cat *catalog.Catalog, format string) error {
	switch format {
	case FormatJSON, FormatYAML:
		return renderStructured(w, cat, format)
	case FormatTable:
		Writef(w, "%s", RenderTable(cat))
		return nil
	case FormatKeys:
		for _, name := range cat.APIKeyList {
			Writef(w, "%s\n", name)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// RenderTable renders one grid row per descriptor.
func RenderTable(cat *catalog.Catalog) string {
	if len(cat.API) == 0 {
		return "No APIs found.\n"
	}
	rows := make([][]any, 0, len(cat.API))
	for _, d := range cat.API {
		rows = append(rows, []any{
			d.Name,
			strings.ToUpper(d.Method),
			orDash(d.Market),
			orDash(d.Prefix),
			orDash(d.Path),
			strconv.Itoa(d.Parameters.Len()),
			strconv.Itoa(d.RequestBody.Len()),
			string(d.BodySource),
		})
	}
	t := gotabulate.Create(rows)
	t.SetHeaders(tableHeaders)
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(85)
	return t.Render("grid")
}

func renderStructured(w io.Writer, node any, format string) error {
	var data []byte
	var err error

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(node, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(node)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}

	if _, err := fmt.Fprintln(w, strings.TrimRight(string(data), "\n")); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
