package builtin

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/namespace"
	"github.com/mwantia/ossfm/offline"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	folderStyle = cellStyle.Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func renderTable(w io.Writer, headers []string, rows [][]string, highlight func(row int) bool) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 && highlight != nil && highlight(row) {
				return folderStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
}

func displayName(entry *data.Entry) string {
	if entry.IsFolder() {
		return entry.Name + data.Delimiter
	}
	return entry.Name
}

func renderEntries(w io.Writer, entries []*data.Entry, plain bool) {
	if plain {
		for _, entry := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", entry.Kind, displayName(entry), entry.Size, entry.FullKey)
		}
		return
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, dimStyle.Render("(empty)"))
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsFolder() {
			rows = append(rows, []string{displayName(entry), "", ""})
			continue
		}
		rows = append(rows, []string{
			displayName(entry),
			humanize.Bytes(uint64(entry.Size)),
			humanize.Time(entry.LastModified),
		})
	}

	renderTable(w, []string{"NAME", "SIZE", "MODIFIED"}, rows, func(row int) bool {
		return entries[row].IsFolder()
	})
}

func renderPlans(w io.Writer, plans ...*namespace.Plan) {
	for _, plan := range plans {
		if plan.IsEmpty() {
			fmt.Fprintf(w, "%s: nothing to do\n", plan.Kind)
			continue
		}

		target := plan.Destination
		if target == "" {
			target = plan.Source
		}
		fmt.Fprintf(w, "%s: %s\n", plan.Kind, target)
	}
}

func renderDownloads(w io.Writer, downloads []*offline.Download, plain bool) {
	if plain {
		for _, download := range downloads {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", download.ID, download.Key, download.Encoding, download.Size,
				download.DownloadTime.Format("2006-01-02T15:04:05Z07:00"))
		}
		return
	}

	if len(downloads) == 0 {
		fmt.Fprintln(w, dimStyle.Render("(no downloads)"))
		return
	}

	rows := make([][]string, 0, len(downloads))
	for _, download := range downloads {
		rows = append(rows, []string{
			download.ID.String(),
			download.Name,
			humanize.Bytes(uint64(download.Size)),
			strings.ToUpper(download.Encoding),
			humanize.Time(download.DownloadTime),
		})
	}

	renderTable(w, []string{"ID", "NAME", "SIZE", "ENCODING", "DOWNLOADED"}, rows, nil)
}
