package k8s

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	metricsclientset "k8s.io/metrics/pkg/client/clientset/versioned"
)

// ClientConfig selects the cluster and project the console works on
type ClientConfig struct {
	Kubeconfig string
	Context    string
	ProjectID  string
	// ClusterID defaults to the kubeconfig cluster name of the context
	ClusterID string
}

// NewClusterClient builds the clients for cfg from the kubeconfig file
func NewClusterClient(cfg ClientConfig) (*ClusterClient, error) {
	restConfig, clusterName, err := loadRESTConfig(cfg.Kubeconfig, cfg.Context)
	if err != nil {
		return nil, err
	}

	// Use protobuf for better performance
	restConfig.ContentType = "application/vnd.kubernetes.protobuf"

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating clientset: %w", err)
	}

	// CRDs such as Machine are not served as protobuf
	jsonConfig := rest.CopyConfig(restConfig)
	jsonConfig.ContentType = "application/json"

	dynamicClient, err := dynamic.NewForConfig(jsonConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating dynamic client: %w", err)
	}

	metricsClient, err := metricsclientset.NewForConfig(jsonConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating metrics client: %w", err)
	}

	clusterID := cfg.ClusterID
	if clusterID == "" {
		clusterID = clusterName
	}

	return newClusterClient(clientset, dynamicClient, metricsClient, cfg.ProjectID, Cluster{
		ID:   clusterID,
		Name: clusterName,
	}), nil
}

// loadRESTConfig reads kubeconfig, defaulting to ~/.kube/config, and returns
// the REST config and cluster name of contextName (or the current context)
func loadRESTConfig(kubeconfig, contextName string) (*rest.Config, string, error) {
	if kubeconfig == "" {
		if home := os.Getenv("HOME"); home != "" {
			kubeconfig = filepath.Join(home, ".kube", "config")
		} else {
			return nil, "", fmt.Errorf("HOME environment variable not set and no kubeconfig provided")
		}
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfig}
	configOverrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		configOverrides.CurrentContext = contextName
	}

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)

	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, "", fmt.Errorf("error building kubeconfig: %w", err)
	}

	raw, err := clientConfig.RawConfig()
	if err != nil {
		return nil, "", fmt.Errorf("error reading kubeconfig: %w", err)
	}

	current := raw.CurrentContext
	if contextName != "" {
		current = contextName
	}
	clusterName := current
	if kubeContext, ok := raw.Contexts[current]; ok && kubeContext.Cluster != "" {
		clusterName = kubeContext.Cluster
	}

	return restConfig, clusterName, nil
}
