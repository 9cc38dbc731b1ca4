package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/HerbHall/netinventory/internal/inventory"
	"github.com/HerbHall/netinventory/internal/subnet"
	"github.com/HerbHall/netinventory/pkg/models"
)

// Dracula palette.
const (
	colorCyan    = "#8BE9FD"
	colorGreen   = "#50FA7B"
	colorOrange  = "#FFB86C"
	colorPurple  = "#BD93F9"
	colorRed     = "#FF5555"
	colorComment = "#6272A4"
)

// columnWidth caps free-text columns in the device table.
const columnWidth = 18

// view renders styled output to one writer. Colour is dropped automatically
// when the writer is not a terminal.
type view struct {
	w                                io.Writer
	title, label, ok, warn, bad, dim lipgloss.Style
	header, cell                     lipgloss.Style
	border                           lipgloss.Style
}

func newView(w io.Writer) *view {
	r := lipgloss.NewRenderer(w)
	return &view{
		w:      w,
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorPurple)),
		label:  r.NewStyle().Foreground(lipgloss.Color(colorCyan)),
		ok:     r.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		warn:   r.NewStyle().Foreground(lipgloss.Color(colorOrange)),
		bad:    r.NewStyle().Foreground(lipgloss.Color(colorRed)),
		dim:    r.NewStyle().Foreground(lipgloss.Color(colorComment)),
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorCyan)).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		border: r.NewStyle().Foreground(lipgloss.Color(colorComment)),
	}
}

func (v *view) println(a ...any) {
	fmt.Fprintln(v.w, a...)
}

func (v *view) printf(format string, a ...any) {
	fmt.Fprintf(v.w, format, a...)
}

func (v *view) success(msg string) { v.println(v.ok.Render(msg)) }
func (v *view) warning(msg string) { v.println(v.warn.Render(msg)) }
func (v *view) failure(msg string) { v.println(v.bad.Render(msg)) }

func (v *view) table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(v.border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return v.header
			}
			return v.cell
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// devices prints a device table with a count footer.
func (v *view) devices(shown []*models.Device, total int) {
	if len(shown) == 0 {
		v.println()
		v.warning("No devices found.")
		v.println()
		return
	}

	rows := make([][]string, 0, len(shown))
	for _, d := range shown {
		rows = append(rows, []string{
			d.DeviceID,
			truncate(d.Name),
			string(d.DeviceType),
			truncate(d.IP),
			truncate(d.Location),
			string(d.Status),
		})
	}

	v.println()
	v.println(v.title.Render("Inventory"))
	v.println(v.table([]string{"ID", "Name", "Type", "IP", "Location", "Status"}, rows))
	v.printf("Total shown: %d (Total in inventory: %d)\n\n", len(shown), total)
}

// details prints every field of one device.
func (v *view) details(d *models.Device) {
	notes := d.Notes
	if notes == "" {
		notes = "(none)"
	}
	fields := []struct{ label, value string }{
		{"Device ID", d.DeviceID},
		{"Name", d.Name},
		{"Type", string(d.DeviceType)},
		{"IP", d.IP},
		{"Location", d.Location},
		{"Owner", d.Owner},
		{"Status", string(d.Status)},
		{"Notes", notes},
		{"Created", d.CreatedAt},
	}
	v.println(v.dim.Render(strings.Repeat("-", 60)))
	for _, f := range fields {
		v.printf("%s : %s\n", v.label.Render(fmt.Sprintf("%-9s", f.label)), f.value)
	}
	v.println(v.dim.Render(strings.Repeat("-", 60)))
}

// matches prints a numbered pick list.
func (v *view) matches(ms []*models.Device) {
	v.println()
	v.println(v.title.Render("Matches:"))
	for i, d := range ms {
		v.printf("  %d) %s | %s | %s | %s | %s | %s\n",
			i+1, d.DeviceID, d.Name, d.DeviceType, d.IP, d.Location, d.Status)
	}
}

// plan prints the labelled rows of a subnet report.
func (v *view) plan(r *subnet.Report) {
	v.println()
	v.println(v.title.Render("Results"))
	v.println(v.dim.Render(strings.Repeat("-", 60)))
	for _, l := range r.Lines() {
		v.printf("%s: %s\n", v.label.Render(fmt.Sprintf("%-13s", l.Label)), l.Value)
	}
	v.println(v.dim.Render(strings.Repeat("-", 60)))
	v.println()
}

// report prints the three grouped tallies.
func (v *view) report(r inventory.Report) {
	if r.Total == 0 {
		v.println()
		v.warning("Inventory is empty.")
		v.println()
		return
	}

	sections := []struct {
		title string
		tally inventory.Tally
	}{
		{"By Status", r.ByStatus},
		{"By Location", r.ByLocation},
		{"By Device Type", r.ByType},
	}

	v.println()
	v.println(v.title.Render("Inventory Report"))
	v.printf("Total devices: %d\n", r.Total)
	for _, s := range sections {
		rows := make([][]string, 0, len(s.tally))
		for _, b := range s.tally.Buckets() {
			rows = append(rows, []string{b.Key, fmt.Sprint(b.Count)})
		}
		v.println()
		v.println(v.label.Render(s.title + ":"))
		v.println(v.table([]string{"Value", "Count"}, rows))
	}
	v.println()
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= columnWidth {
		return s
	}
	return string(r[:columnWidth])
}

// PrintPlan writes a subnet report in the interactive layout.
func PrintPlan(w io.Writer, r *subnet.Report) {
	newView(w).plan(r)
}

// PrintReport writes the grouped inventory counts in the interactive layout.
func PrintReport(w io.Writer, r inventory.Report) {
	newView(w).report(r)
}
