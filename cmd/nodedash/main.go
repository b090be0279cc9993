package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/renato0307/nodedash/internal/analytics"
	"github.com/renato0307/nodedash/internal/app"
	"github.com/renato0307/nodedash/internal/config"
	"github.com/renato0307/nodedash/internal/k8s"
	"github.com/renato0307/nodedash/internal/keyboard"
	"github.com/renato0307/nodedash/internal/logging"
	"github.com/renato0307/nodedash/internal/rbac"
	"github.com/renato0307/nodedash/internal/settings"
	"github.com/renato0307/nodedash/internal/ui"
)

var configPath string

func main() {
	// client-go logs through klog; keep it off the terminal
	klog.InitFlags(nil)
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "FATAL")
	flag.Set("v", "0")
	defer klog.Flush()

	rootCmd := &cobra.Command{
		Use:          "nodedash",
		Short:        "Terminal console for the nodes of a managed Kubernetes cluster",
		SilenceUsage: true,
		RunE:         run,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "Path to the configuration file (default: $HOME/.config/nodedash/config.yaml)")
	flags.String("kubeconfig", "", "Path to kubeconfig file (default: $HOME/.kube/config)")
	flags.String("context", "", "Kubernetes context to use")
	flags.String("project", "", "Project the cluster belongs to")
	flags.String("cluster", "", "Cluster id (default: the kubeconfig cluster name)")
	flags.String("theme", "charm", "Theme to use (charm, dracula, nord, solarized)")
	flags.Bool("dummy", false, "Use dummy data instead of connecting to a cluster")
	flags.String("log-file", "", "Write logs to this file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	store, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	cfg := store.Config()

	if err := logging.Init(cfg.Log.LoggingConfig()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Shutdown()

	cluster, projectID, access, err := connect(cfg)
	if err != nil {
		return err
	}
	logging.Info("starting nodedash", "project", projectID, "dummy", cfg.Dummy, "config", store.File())

	stream := settings.NewBroadcaster(cfg.Settings)
	store.Watch(stream)

	model := app.NewModel(app.Options{
		Cluster:         cluster,
		ProjectID:       projectID,
		Users:           rbac.NewService(access),
		Settings:        stream,
		Analytics:       analytics.NewEmitter(),
		Theme:           ui.GetTheme(cfg.Theme),
		Keys:            keyboard.GetKeys(),
		RefreshInterval: cfg.RefreshInterval,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// connect returns the cluster service, the project it belongs to and the
// access rules to apply
func connect(cfg *config.Config) (k8s.ClusterService, string, rbac.Access, error) {
	if !cfg.Dummy {
		client, err := k8s.NewClusterClient(k8s.ClientConfig{
			Kubeconfig: cfg.Kubeconfig,
			Context:    cfg.Context,
			ProjectID:  cfg.ProjectID,
			ClusterID:  cfg.ClusterID,
		})
		if err != nil {
			return nil, "", rbac.Access{}, fmt.Errorf("error initializing Kubernetes connection: %w", err)
		}
		return client, cfg.ProjectID, cfg.Access, nil
	}

	dummy, err := k8s.NewDummyCluster()
	if err != nil {
		return nil, "", rbac.Access{}, err
	}
	projectID := dummy.ProjectID()
	access := cfg.Access
	if access.CurrentUser.Name == "" && access.CurrentUser.Email == "" {
		access = dummyAccess(projectID)
	}
	return dummy, projectID, access, nil
}

// dummyAccess lets the dummy user delete nodes in the dummy project
func dummyAccess(projectID string) rbac.Access {
	return rbac.Access{
		CurrentUser: rbac.Member{
			Name:     "dummy",
			Projects: map[string]rbac.GroupID{projectID: "owners"},
		},
		Groups: map[string]rbac.GroupConfig{
			"owners": {rbac.ResourceNodes: {rbac.PermissionView, rbac.PermissionDelete}},
		},
	}
}
