// Package nodes implements the node table of a cluster: sorting, derived
// display fields, pagination, row expansion and the permission-gated delete
// workflow.
package nodes

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/nodedash/internal/analytics"
	"github.com/renato0307/nodedash/internal/errdef"
	"github.com/renato0307/nodedash/internal/k8s"
	"github.com/renato0307/nodedash/internal/keyboard"
	"github.com/renato0307/nodedash/internal/logging"
	"github.com/renato0307/nodedash/internal/messages"
	"github.com/renato0307/nodedash/internal/modals"
	"github.com/renato0307/nodedash/internal/rbac"
	"github.com/renato0307/nodedash/internal/settings"
	"github.com/renato0307/nodedash/internal/ui"
)

// ClusterService deletes nodes
type ClusterService interface {
	DeleteNode(ctx context.Context, projectID, clusterID, nodeID string) error
}

// Notifier shows success notifications
type Notifier interface {
	Success(message string) tea.Cmd
}

// ConfirmationDialog opens a dialog and returns its token; the answer
// arrives as a modals.DialogClosedMsg carrying the same token
type ConfirmationDialog interface {
	Open(cfg modals.DialogConfig) (string, tea.Cmd)
}

// Analytics records user interface events
type Analytics interface {
	EmitEvent(category, action string)
}

// Deps are the collaborators of the node table
type Deps struct {
	Cluster   ClusterService
	Users     rbac.UserService
	Settings  settings.Stream
	Notifier  Notifier
	Dialog    ConfirmationDialog
	Analytics Analytics
	Theme     *ui.Theme
	Keys      *keyboard.Keys
}

// Inputs is the data the parent pushes on every change
type Inputs struct {
	Cluster        k8s.Cluster
	Nodes          []k8s.Node
	Metrics        map[string]k8s.NodeMetrics
	ProjectID      string
	HealthStatus   k8s.HealthStatus
	ClusterRunning bool
}

// Target is the part of a row a toggle originated from
type Target int

const (
	TargetRow Target = iota
	TargetCopy
)

// clipboardWrite is replaced in tests
var clipboardWrite = clipboard.WriteAll

// Model is the node table screen
type Model struct {
	deps   Deps
	inputs Inputs
	log    *logging.Logger

	sort      SortState
	displayed []k8s.Node
	expanded  map[string]bool

	user        *rbac.Member
	groupConfig rbac.GroupConfig

	// dialog token -> node awaiting confirmation
	pending map[string]k8s.Node

	pageSize  int
	paginator paginator.Model
	table     table.Model

	ctx        context.Context
	cancel     context.CancelFunc
	settingsCh <-chan settings.UserSettings
	closed     bool

	width  int
	height int
}

// New creates the node table with the initial inputs
func New(deps Deps, inputs Inputs) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = settings.DefaultItemsPerPage

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
	)
	t.SetStyles(deps.Theme.ToTableStyles())

	m := &Model{
		deps:      deps,
		log:       logging.Component("nodes"),
		sort:      SortState{Field: SortByName, Direction: Ascending},
		expanded:  map[string]bool{},
		pending:   map[string]k8s.Node{},
		pageSize:  settings.DefaultItemsPerPage,
		paginator: p,
		table:     t,
		ctx:       ctx,
		cancel:    cancel,
	}
	m.SetInputs(inputs)
	return m
}

// Init resolves the user and their permissions once and starts listening to
// settings changes
func (m *Model) Init() tea.Cmd {
	m.settingsCh = m.deps.Settings.Subscribe(m.ctx)
	return tea.Batch(
		m.resolveUser(),
		m.resolveGroupConfig(),
		waitForSettings(m.settingsCh),
	)
}

// Close cancels the settings subscription. Messages that arrive afterwards
// are ignored.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.cancel()
}

// SetInputs replaces the inputs and re-applies the current sort
func (m *Model) SetInputs(inputs Inputs) {
	m.inputs = inputs
	m.refresh()
}

// SetSort changes the active sort
func (m *Model) SetSort(state SortState) {
	m.sort = state
	m.refresh()
}

// SortState returns the active sort
func (m *Model) SortState() SortState {
	return m.sort
}

// Displayed returns the nodes in display order
func (m *Model) Displayed() []k8s.Node {
	return m.displayed
}

// CanDelete reports whether the current user may delete nodes. It is false
// until both the user and the group permissions are resolved.
func (m *Model) CanDelete() bool {
	return rbac.HasPermission(m.user, m.groupConfig, rbac.ResourceNodes, rbac.PermissionDelete)
}

// IsPaginatorVisible reports whether there is more than one page
func (m *Model) IsPaginatorVisible() bool {
	return len(m.inputs.Nodes) > 0 && len(m.inputs.Nodes) > m.pageSize
}

// PageSize returns the number of nodes per page
func (m *Model) PageSize() int {
	return m.pageSize
}

// Page returns the zero based current page
func (m *Model) Page() int {
	return m.paginator.Page
}

// IsExpanded reports whether the row of nodeID shows its details
func (m *Model) IsExpanded(nodeID string) bool {
	return m.expanded[nodeID]
}

// ToggleExpanded flips the details of nodeID unless the toggle came from the
// copy control
func (m *Model) ToggleExpanded(nodeID string, target Target) {
	if target == TargetCopy {
		return
	}
	m.expanded[nodeID] = !m.expanded[nodeID]
	m.updateRows()
}

// Metrics returns the metrics of the named node, if any
func (m *Model) Metrics(nodeName string) (k8s.NodeMetrics, bool) {
	metrics, ok := m.inputs.Metrics[nodeName]
	return metrics, ok
}

// SelectedNode returns the node under the cursor
func (m *Model) SelectedNode() (k8s.Node, bool) {
	page := m.pageNodes()
	i := m.table.Cursor()
	if i < 0 || i >= len(page) {
		return k8s.Node{}, false
	}
	return page[i], true
}

// SetSize updates the screen dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(columns(width))
	m.updateRows()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case userResolvedMsg:
		if msg.err != nil {
			m.log.Warn("failed to resolve current user", "error", msg.err)
			return m, nil
		}
		user := msg.user
		m.user = &user
		m.updateRows()
		return m, nil

	case groupConfigResolvedMsg:
		if msg.err != nil {
			m.log.Warn("failed to resolve group permissions", "project", m.inputs.ProjectID, "error", msg.err)
			return m, nil
		}
		m.groupConfig = msg.config
		m.updateRows()
		return m, nil

	case settingsMsg:
		if !msg.ok {
			return m, nil
		}
		m.pageSize = msg.settings.Normalize().ItemsPerPage
		m.refresh()
		return m, waitForSettings(m.settingsCh)

	case modals.DialogClosedMsg:
		return m, m.handleDialogClosed(msg)

	case nodeDeleteResultMsg:
		return m, m.handleDeleteResult(msg)

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	keys := m.deps.Keys
	switch key := msg.String(); {
	case keyboard.Matches(key, keys.Delete, keys.DeleteAlt):
		node, ok := m.SelectedNode()
		if !ok {
			return nil, true
		}
		return m.DeleteNodeDialog(node), true

	case keyboard.Matches(key, keys.Toggle):
		if node, ok := m.SelectedNode(); ok {
			m.ToggleExpanded(node.ID, TargetRow)
		}
		return nil, true

	case keyboard.Matches(key, keys.Copy):
		node, ok := m.SelectedNode()
		if !ok {
			return nil, true
		}
		m.ToggleExpanded(node.ID, TargetCopy)
		return m.copyID(node), true

	case keyboard.Matches(key, keys.SortField):
		m.SetSort(m.sort.NextField())
		return nil, true

	case keyboard.Matches(key, keys.SortDirection):
		m.SetSort(m.sort.NextDirection())
		return nil, true

	case keyboard.Matches(key, keys.PrevPage):
		m.paginator.PrevPage()
		m.updateRows()
		return nil, true

	case keyboard.Matches(key, keys.NextPage):
		m.paginator.NextPage()
		m.updateRows()
		return nil, true
	}
	return nil, false
}

// DeleteNodeDialog asks for confirmation to delete node. The dialog-opened
// event is emitted whether or not the user goes on to confirm.
func (m *Model) DeleteNodeDialog(node k8s.Node) tea.Cmd {
	if !m.CanDelete() {
		err := errdef.NewForbidden("you are not allowed to delete nodes in project %s", m.inputs.ProjectID)
		return messages.ErrorCmd("Cannot delete node %s: %v", node.Name, err)
	}

	token, cmd := m.deps.Dialog.Open(modals.DialogConfig{
		Title:        "Delete Node",
		Message:      fmt.Sprintf("Are you sure you want to permanently delete node %s?", node.Name),
		ConfirmLabel: "Delete",
	})
	m.pending[token] = node
	m.deps.Analytics.EmitEvent(analytics.CategoryClusterOverview, analytics.ActionDeleteNodeDialogOpened)
	return cmd
}

func (m *Model) handleDialogClosed(msg modals.DialogClosedMsg) tea.Cmd {
	node, ok := m.pending[msg.Token]
	if !ok {
		return nil
	}
	delete(m.pending, msg.Token)

	if !msg.Confirmed {
		return nil
	}

	cluster := m.deps.Cluster
	ctx := context.WithoutCancel(m.ctx)
	projectID, clusterID := m.inputs.ProjectID, m.inputs.Cluster.ID
	return func() tea.Msg {
		err := cluster.DeleteNode(ctx, projectID, clusterID, node.ID)
		return nodeDeleteResultMsg{node: node, err: err}
	}
}

func (m *Model) handleDeleteResult(msg nodeDeleteResultMsg) tea.Cmd {
	if msg.err != nil {
		return messages.ErrorCmd("Failed to delete node %s: %v", msg.node.Name, msg.err)
	}

	m.log.Info("node deleted", "node", msg.node.ID, "cluster", m.inputs.Cluster.ID)
	m.deps.Analytics.EmitEvent(analytics.CategoryClusterOverview, analytics.ActionNodeDeleted)

	node := msg.node
	return tea.Batch(
		m.deps.Notifier.Success(fmt.Sprintf("The %s node was removed from the %s cluster", node.Name, m.inputs.Cluster.Name)),
		func() tea.Msg { return NodeDeletedMsg{Node: node} },
	)
}

func (m *Model) copyID(node k8s.Node) tea.Cmd {
	id := ShortID(node)
	if err := clipboardWrite(id); err != nil {
		return messages.ErrorCmd("Failed to copy %s: %v", id, err)
	}
	return messages.SuccessCmd("Copied %s to clipboard", id)
}

func (m *Model) resolveUser() tea.Cmd {
	users, ctx := m.deps.Users, m.ctx
	return func() tea.Msg {
		user, err := users.CurrentUser(ctx)
		return userResolvedMsg{user: user, err: err}
	}
}

func (m *Model) resolveGroupConfig() tea.Cmd {
	users, ctx, projectID := m.deps.Users, m.ctx, m.inputs.ProjectID
	return func() tea.Msg {
		group, err := users.CurrentUserGroup(ctx, projectID)
		if err != nil {
			return groupConfigResolvedMsg{err: err}
		}
		cfg, err := users.GroupConfig(ctx, group)
		return groupConfigResolvedMsg{config: cfg, err: err}
	}
}

func waitForSettings(ch <-chan settings.UserSettings) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		return settingsMsg{settings: s, ok: ok}
	}
}

// refresh re-sorts the inputs and rebuilds pagination and rows
func (m *Model) refresh() {
	m.displayed = ApplySort(m.inputs.Nodes, m.sort)

	m.paginator.PerPage = m.pageSize
	if len(m.displayed) == 0 {
		m.paginator.TotalPages = 1
	} else {
		m.paginator.SetTotalPages(len(m.displayed))
	}
	if last := m.paginator.TotalPages - 1; m.paginator.Page > last {
		m.paginator.Page = last
	}
	m.updateRows()
}

func (m *Model) pageNodes() []k8s.Node {
	start, end := m.paginator.GetSliceBounds(len(m.displayed))
	start = min(start, end)
	return m.displayed[start:end]
}
