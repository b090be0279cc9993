package nodes

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/renato0307/nodedash/internal/k8s"
)

// viewChrome is the title, paginator and help lines around the table
const viewChrome = 3

// columns sizes the table for width, giving the name column what is left
func columns(width int) []table.Column {
	fixed := []table.Column{
		{Title: "", Width: 2},
		{Title: "Status", Width: 13},
		{Title: "Kubelet", Width: 10},
		{Title: "IP Addresses", Width: 30},
		{Title: "Created", Width: 15},
	}
	used := 0
	for _, c := range fixed {
		used += c.Width + 2 // cell padding
	}
	nameWidth := max(width-used-2, 20)

	return []table.Column{
		fixed[0],
		fixed[1],
		{Title: "Name", Width: nameWidth},
		fixed[2],
		fixed[3],
		fixed[4],
	}
}

func (m *Model) updateRows() {
	page := m.pageNodes()
	rows := make([]table.Row, 0, len(page))
	for _, n := range page {
		arrow := "▸"
		if m.expanded[n.ID] {
			arrow = "▾"
		}
		rows = append(rows, table.Row{
			arrow,
			string(HealthStatus(n)),
			ShortID(n),
			n.Spec.Versions.Kubelet,
			strings.Join(Addresses(n).IPs(), ", "),
			humanize.Time(n.CreationTimestamp),
		})
	}

	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}

	// SetHeight counts the header, which spans its bottom border too
	headerHeight := lipgloss.Height(m.deps.Theme.Table.Header.Render("x"))
	height := len(rows) + headerHeight
	if m.height > 0 {
		height = min(height, max(m.height-viewChrome, headerHeight+1))
	}
	m.table.SetHeight(height)
}

func (m *Model) View() string {
	theme := m.deps.Theme

	var b strings.Builder

	title := fmt.Sprintf("Nodes (%d) • sorted by %s", len(m.displayed), m.sort)
	b.WriteString(theme.Header.Render(title))
	if !m.inputs.ClusterRunning {
		b.WriteString(theme.StatusBar.Render(fmt.Sprintf("  cluster is %s, node data may be stale", strings.ToLower(string(m.inputs.HealthStatus)))))
	}
	b.WriteString("\n")

	if len(m.displayed) == 0 {
		b.WriteString(theme.StatusBar.Render("No nodes"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.IsPaginatorVisible() {
		b.WriteString(theme.StatusBar.Render("Page " + m.paginator.View()))
		b.WriteString("\n")
	}

	for _, n := range m.pageNodes() {
		if m.expanded[n.ID] {
			b.WriteString(m.renderDetails(n))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.helpLine())
	return b.String()
}

func (m *Model) renderDetails(n k8s.Node) string {
	theme := m.deps.Theme
	var lines []string
	add := func(label, value string) {
		if value == "" {
			return
		}
		lines = append(lines, theme.Label.Render(label)+value)
	}

	lines = append(lines, theme.Header.Render(ShortID(n))+"  "+theme.HealthStyle(string(HealthStatus(n))).Render(string(HealthStatus(n))))
	if ShowAuxiliaryInfo(n) {
		add("Info", AuxiliaryInfo(n))
	}
	if n.Status.ErrorMessage != "" {
		add("Error", theme.Table.StatusError.Render(n.Status.ErrorMessage))
	}
	add("Provider", string(n.Spec.Cloud.Provider))
	add("Instance", n.Spec.Cloud.InstanceType)
	add("OS", OperatingSystem(n))
	add("Architecture", n.Status.NodeInfo.Architecture)
	add("Runtime", n.Status.NodeInfo.ContainerRuntimeVersion)
	add("CPU", n.Status.Capacity.CPU)
	if n.Status.Capacity.Memory != "" {
		add("Memory", FormattedMemory(n.Status.Capacity.Memory))
	}

	addrs := Addresses(n)
	add("Internal IP", strings.Join(addrs.InternalIPs, ", "))
	add("External IP", strings.Join(addrs.ExternalIPs, ", "))
	add("Hostname", strings.Join(addrs.Hostnames, ", "))
	add("Internal DNS", strings.Join(addrs.InternalDNS, ", "))
	add("External DNS", strings.Join(addrs.ExternalDNS, ", "))

	if metrics, ok := m.Metrics(n.Name); ok {
		add("CPU usage", fmt.Sprintf("%dm (%d%%)", metrics.CPUUsedMillicores, metrics.CPUUsedPercentage()))
		add("Memory usage", fmt.Sprintf("%s (%d%%)", humanize.IBytes(uint64(max(metrics.MemoryUsedBytes, 0))), metrics.MemoryUsedPercentage()))
	}

	if HasTags(n.Spec.Cloud.Tags) {
		tags := make([]string, 0, len(n.Spec.Cloud.Tags))
		for _, k := range slices.Sorted(maps.Keys(n.Spec.Cloud.Tags)) {
			tags = append(tags, k+"="+n.Spec.Cloud.Tags[k])
		}
		add("Tags", strings.Join(tags, ", "))
	}

	return theme.Detail.Render(strings.Join(lines, "\n"))
}

func (m *Model) helpLine() string {
	keys := m.deps.Keys
	parts := []string{
		keys.Toggle + " details",
		keys.Copy + " copy id",
		keys.SortField + "/" + keys.SortDirection + " sort",
	}
	if m.IsPaginatorVisible() {
		parts = append(parts, keys.PrevPage+"/"+keys.NextPage+" page")
	}
	if m.CanDelete() {
		parts = append(parts, keys.Delete+" delete")
	}
	return lipgloss.NewStyle().Foreground(m.deps.Theme.Muted).Render(strings.Join(parts, " • "))
}
