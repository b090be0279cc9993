package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/nodedash/internal/k8s"
	"github.com/renato0307/nodedash/internal/ui"
)

// Header is the top line: cluster, project, health and refresh age
type Header struct {
	appName     string
	clusterName string
	projectID   string
	health      k8s.HealthStatus
	nodeCount   int
	lastRefresh time.Time
	width       int
	theme       *ui.Theme
	now         func() time.Time
}

func NewHeader(theme *ui.Theme, appName string) *Header {
	return &Header{
		appName: appName,
		theme:   theme,
		now:     time.Now,
	}
}

func (h *Header) SetCluster(name, projectID string, health k8s.HealthStatus) {
	h.clusterName = name
	h.projectID = projectID
	h.health = health
}

func (h *Header) SetNodeCount(count int) {
	h.nodeCount = count
}

func (h *Header) SetLastRefresh(t time.Time) {
	h.lastRefresh = t
}

func (h *Header) SetWidth(width int) {
	h.width = width
}

func (h *Header) View() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.theme.Primary)

	timingStyle := lipgloss.NewStyle().
		Foreground(h.theme.Muted).
		Padding(0, 1)

	// "nodedash • prod-eu (proj-1) • Running • 4 nodes"
	leftParts := []string{headerStyle.Render(h.appName)}
	if h.clusterName != "" {
		cluster := h.clusterName
		if h.projectID != "" {
			cluster = fmt.Sprintf("%s (%s)", cluster, h.projectID)
		}
		leftParts = append(leftParts, headerStyle.Render(cluster))
	}
	if h.health != "" {
		leftParts = append(leftParts, h.theme.HealthStyle(string(h.health)).Render(string(h.health)))
	}
	if h.nodeCount > 0 {
		leftParts = append(leftParts, fmt.Sprintf("%d nodes", h.nodeCount))
	}
	left := strings.Join(leftParts, " • ")

	var right string
	if !h.lastRefresh.IsZero() {
		right = timingStyle.Render("Last refresh: " + refreshAge(h.now().Sub(h.lastRefresh)))
	}

	spacing := max(h.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	spacer := lipgloss.NewStyle().Width(spacing).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)
}

func refreshAge(elapsed time.Duration) string {
	switch {
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds ago", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	}
}
