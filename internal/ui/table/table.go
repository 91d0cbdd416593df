// Package table renders map-shaped API data as terminal tables.
//
// Rows are always sorted by key so output is stable between calls.
package table

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// RenderSingleMap renders key/value pairs as a two column table.
func RenderSingleMap(m map[string]string, keyHeader, valueHeader string) string {
	rows := make([][]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		rows = append(rows, []string{k, m[k]})
	}
	return render([]string{keyHeader, valueHeader}, rows)
}

// RenderMultiValueMap renders one row per key with its values joined by
// commas, e.g. host group -> components.
func RenderMultiValueMap(m map[string][]string, keyHeader, valueHeader string) string {
	rows := make([][]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		rows = append(rows, []string{k, strings.Join(m[k], ", ")})
	}
	return render([]string{keyHeader, valueHeader}, rows)
}

// RenderMapValueMap renders a nested map as three columns, one row per
// inner entry, e.g. service -> component -> state.
func RenderMapValueMap(m map[string]map[string]string, keyHeader, subKeyHeader, valueHeader string) string {
	var rows [][]string
	for _, k := range sortedKeys(m) {
		inner := m[k]
		if len(inner) == 0 {
			rows = append(rows, []string{k, "", ""})
			continue
		}
		for _, sk := range sortedKeys(inner) {
			rows = append(rows, []string{k, sk, inner[sk]})
		}
	}
	return render([]string{keyHeader, subKeyHeader, valueHeader}, rows)
}

func render(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
