package app

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/nodedash/internal/analytics"
	"github.com/renato0307/nodedash/internal/components"
	"github.com/renato0307/nodedash/internal/config"
	"github.com/renato0307/nodedash/internal/k8s"
	"github.com/renato0307/nodedash/internal/keyboard"
	"github.com/renato0307/nodedash/internal/logging"
	"github.com/renato0307/nodedash/internal/messages"
	"github.com/renato0307/nodedash/internal/modals"
	"github.com/renato0307/nodedash/internal/nodes"
	"github.com/renato0307/nodedash/internal/rbac"
	"github.com/renato0307/nodedash/internal/settings"
	"github.com/renato0307/nodedash/internal/types"
	"github.com/renato0307/nodedash/internal/ui"
)

const (
	AppName = "nodedash"

	loadTimeout = 20 * time.Second
)

// Options are the services the console runs against
type Options struct {
	Cluster         k8s.ClusterService
	ProjectID       string
	Users           rbac.UserService
	Settings        settings.Stream
	Analytics       *analytics.Emitter
	Theme           *ui.Theme
	Keys            *keyboard.Keys
	RefreshInterval time.Duration
}

// clusterLoadedMsg carries the result of one refresh
type clusterLoadedMsg struct {
	cluster   k8s.Cluster
	nodes     []k8s.Node
	metrics   map[string]k8s.NodeMetrics
	err       error
	duration  time.Duration
	scheduled bool
}

// Model is the parent of the node screen. It owns the authoritative node
// list and pushes it to the screen after every change.
type Model struct {
	opts    Options
	log     *logging.Logger
	nodes   *nodes.Model
	inputs  nodes.Inputs
	dialog  *modals.Confirm
	header  *components.Header
	layout  *components.Layout
	message *components.UserMessage
	width   int
	height  int
}

func NewModel(opts Options) Model {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = config.DefaultRefreshInterval
	}
	if opts.Analytics == nil {
		opts.Analytics = analytics.NewEmitter()
	}

	inputs := nodes.Inputs{ProjectID: opts.ProjectID, HealthStatus: k8s.HealthProvisioning}
	screen := nodes.New(nodes.Deps{
		Cluster:   opts.Cluster,
		Users:     opts.Users,
		Settings:  opts.Settings,
		Notifier:  messages.NewStatusNotifier(),
		Dialog:    modals.NewDialogs(),
		Analytics: opts.Analytics,
		Theme:     opts.Theme,
		Keys:      opts.Keys,
	}, inputs)

	header := components.NewHeader(opts.Theme, AppName)
	header.SetWidth(80)
	message := components.NewUserMessage(opts.Theme)
	message.SetWidth(80)
	layout := components.NewLayout(80, 24)
	screen.SetSize(80, layout.BodyHeight())

	return Model{
		opts:    opts,
		log:     logging.Component("app"),
		nodes:   screen,
		inputs:  inputs,
		header:  header,
		layout:  layout,
		message: message,
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.nodes.Init(),
		m.message.Show(types.LoadingMsg("Loading nodes")),
		m.load(true),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.SetSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)
		m.message.SetWidth(msg.Width)
		m.nodes.SetSize(msg.Width, m.layout.BodyHeight())
		return m, nil

	case tea.KeyMsg:
		if m.dialog != nil {
			_, cmd := m.dialog.Update(msg)
			return m, cmd
		}

		keys := m.opts.Keys
		switch key := msg.String(); {
		case keyboard.Matches(key, keys.Quit, keys.QuitAlt):
			m.nodes.Close()
			m.opts.Analytics.LogTotals()
			return m, tea.Quit
		case keyboard.Matches(key, keys.Refresh):
			return m, tea.Batch(m.message.Show(types.LoadingMsg("Refreshing nodes")), m.load(false))
		}

	case types.RefreshTickMsg:
		return m, m.load(true)

	case clusterLoadedMsg:
		cmd := m.handleLoaded(msg)
		return m, cmd

	case types.RefreshCompleteMsg:
		m.header.SetLastRefresh(time.Now())
		m.log.Debug("nodes refreshed", "duration", msg.Duration, "nodes", len(m.inputs.Nodes))
		return m, nil

	case nodes.NodeDeletedMsg:
		m.inputs.Nodes = slices.DeleteFunc(slices.Clone(m.inputs.Nodes), func(n k8s.Node) bool {
			return n.ID == msg.Node.ID
		})
		m.pushInputs()
		return m, nil

	case modals.ShowDialogMsg:
		m.dialog = modals.NewConfirm(msg, m.opts.Theme, m.opts.Keys)
		return m, m.dialog.Init()

	case modals.DialogClosedMsg:
		if m.dialog != nil && m.dialog.Token() == msg.Token {
			m.dialog = nil
		}

	case types.StatusMsg:
		if msg.Type == types.MessageTypeError {
			m.log.Error("status error", "message", msg.Message)
		}
		return m, m.message.Show(msg)

	case types.ClearStatusMsg:
		m.message.Clear(msg.MessageID)
		return m, nil

	case spinner.TickMsg:
		_, cmd := m.message.Update(msg)
		return m, cmd
	}

	_, cmd := m.nodes.Update(msg)
	return m, cmd
}

// load fetches the cluster, its nodes and metrics. A scheduled load arms the
// next refresh tick when it completes.
func (m Model) load(scheduled bool) tea.Cmd {
	cluster := m.opts.Cluster
	log := m.log
	return func() tea.Msg {
		start := time.Now()
		defer logging.Since(start, "cluster refresh")

		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		result := clusterLoadedMsg{scheduled: scheduled}
		c, err := cluster.Cluster(ctx)
		if err != nil {
			result.err = messages.WrapError(err, "failed to load cluster")
			return result
		}
		result.cluster = c

		list, err := cluster.ListNodes(ctx)
		if err != nil {
			result.err = messages.WrapError(err, "failed to list nodes")
			return result
		}
		result.nodes = list

		// metrics are optional, the table renders without them
		metrics, err := cluster.ListNodeMetrics(ctx)
		if err != nil {
			log.Warn("failed to list node metrics", "error", err)
		}
		result.metrics = metrics
		result.duration = time.Since(start)
		return result
	}
}

func (m *Model) handleLoaded(msg clusterLoadedMsg) tea.Cmd {
	var cmds []tea.Cmd
	if msg.scheduled {
		cmds = append(cmds, tea.Tick(m.opts.RefreshInterval, func(time.Time) tea.Msg {
			return types.RefreshTickMsg{}
		}))
	}

	if msg.err != nil {
		m.inputs.HealthStatus = k8s.HealthFailed
		m.inputs.ClusterRunning = false
		m.pushInputs()
		return tea.Batch(append(cmds, messages.ErrorCmd("%v", msg.err))...)
	}

	m.inputs.Cluster = msg.cluster
	m.inputs.Nodes = msg.nodes
	m.inputs.Metrics = msg.metrics
	m.inputs.HealthStatus = k8s.HealthRunning
	m.inputs.ClusterRunning = true
	m.pushInputs()
	m.message.ClearLoading()

	duration := msg.duration
	cmds = append(cmds, func() tea.Msg { return types.RefreshCompleteMsg{Duration: duration} })
	return tea.Batch(cmds...)
}

func (m *Model) pushInputs() {
	m.nodes.SetInputs(m.inputs)
	m.header.SetCluster(m.inputs.Cluster.Name, m.inputs.ProjectID, m.inputs.HealthStatus)
	m.header.SetNodeCount(len(m.inputs.Nodes))
}

func (m Model) View() string {
	var overlay string
	if m.dialog != nil {
		overlay = m.dialog.View()
	}
	return m.layout.Render(m.header.View(), m.nodes.View(), overlay, m.message.View())
}
