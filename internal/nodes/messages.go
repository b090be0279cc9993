package nodes

import (
	"github.com/renato0307/nodedash/internal/k8s"
	"github.com/renato0307/nodedash/internal/rbac"
	"github.com/renato0307/nodedash/internal/settings"
)

// NodeDeletedMsg is emitted once for every node the user deleted
type NodeDeletedMsg struct {
	Node k8s.Node
}

type userResolvedMsg struct {
	user rbac.Member
	err  error
}

type groupConfigResolvedMsg struct {
	config rbac.GroupConfig
	err    error
}

type settingsMsg struct {
	settings settings.UserSettings
	ok       bool
}

type nodeDeleteResultMsg struct {
	node k8s.Node
	err  error
}
