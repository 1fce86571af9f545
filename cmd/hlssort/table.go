package main

import (
	"strconv"

	"github.com/agleyzer/hlssort/internal/playlist"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderSummary renders the sorted playlist as a table, one row per record in
// emission order.
func renderSummary(pl *playlist.Playlist, sortKey string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Group", "#", sortKey, "URI"})

	for _, c := range pl.EmissionOrder() {
		for i, attrs := range pl.Records(c) {
			value, ok := attrs.Get(sortKey)
			if !ok {
				value = "-"
			}
			tw.AppendRow(table.Row{c.String(), strconv.Itoa(i + 1), value, recordURI(c, attrs)})
		}
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func recordURI(c playlist.Category, attrs playlist.AttributeList) string {
	if c == playlist.StreamInf {
		if uri, ok := attrs.URI(); ok {
			return uri
		}
		return ""
	}
	uri, _ := attrs.Get(playlist.URIKey)
	return uri
}
