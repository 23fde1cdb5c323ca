// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/staranto/cludder/internal/cache"
	"github.com/staranto/cludder/internal/config"
	"github.com/staranto/cludder/internal/page"
	"github.com/staranto/cludder/internal/render"
)

// Formats accepted by --output.
var Formats = []string{"html", "text", "json", "yaml"}

// Options carries the output flags of a command.
type Options struct {
	Format string
	Color  bool
	Titles bool
	Filter string
	// Now anchors post ages. Zero means time.Now.
	Now time.Time
}

// SliceDiceSpit writes the result of an action to w. The html format is the
// page document for posts and the rendered fragments otherwise; every other
// format emits the filtered dataset of kind.
func SliceDiceSpit(w io.Writer, doc *page.Document, c *cache.Cache, kind Kind, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Format == "html" {
		return writeHTML(w, doc, c, kind)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	columns := Columns(kind)
	dataset, err := BuildDataset(c, kind, now)
	if err != nil {
		return err
	}
	dataset = FilterDataset(dataset, columns, opts.Filter)
	log.Debugf("emitting %d %s rows as %s", len(dataset), kind, opts.Format)

	switch opts.Format {
	case "json":
		if dataset == nil {
			dataset = []map[string]interface{}{}
		}
		jsonOutput, err := json.Marshal(dataset)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", kind, err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(dataset)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", kind, err)
		}
		_, err = w.Write(yamlOutput)
		return err
	case "text", "":
		color := opts.Color && IsTerminal(w)
		return TableWriter(dataset, columns, color, opts.Titles, w)
	default:
		return fmt.Errorf("unknown output format: %q", opts.Format)
	}
}

func writeHTML(w io.Writer, doc *page.Document, c *cache.Cache, kind Kind) error {
	var fragments []string
	switch kind {
	case KindPosts:
		_, err := doc.WriteTo(w)
		return err
	case KindUsers:
		fragments = render.Users(c)
	case KindFollows:
		fragments = render.Follows(c)
	default:
		return fmt.Errorf("unknown dataset: %q", kind)
	}

	for _, f := range fragments {
		if _, err := fmt.Fprintln(w, f); err != nil {
			return err
		}
	}
	return nil
}

// IsTerminal reports whether w is a terminal. Color escapes are only written
// to one.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	columns []Column,
	color bool,
	titles bool,
	w io.Writer) error {

	if len(resultSet) == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			if !c.Include {
				continue
			}
			row = append(row, InterfaceToString(result[c.Key], "-"))
		}
		rows = append(rows, row)
	}

	pad, _ := config.GetInt("padding", 1)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if titles {
		var headers []string
		for _, c := range columns {
			if c.Include {
				headers = append(headers, strings.ToUpper(c.Key))
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}

	_, err := fmt.Fprintln(w, t)
	return err
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
