// Package rbac models the console's project permissions: which group a user
// belongs to in a project and which actions that group may perform on each
// resource kind.
package rbac

import (
	"context"
	"slices"
	"strings"

	"github.com/renato0307/nodedash/internal/errdef"
)

// Permission is an action on a resource kind
type Permission string

const (
	PermissionView   Permission = "view"
	PermissionEdit   Permission = "edit"
	PermissionCreate Permission = "create"
	PermissionDelete Permission = "delete"
)

// ResourceNodes is the resource kind guarding node operations
const ResourceNodes = "nodes"

// GroupID names a permission group such as "owners" or "viewers"
type GroupID string

// GroupConfig maps a resource kind to the actions a group may perform on it
type GroupConfig map[string][]Permission

// Allows reports whether the group may perform p on resource
func (g GroupConfig) Allows(resource string, p Permission) bool {
	if g == nil {
		return false
	}
	return slices.Contains(g[resource], p)
}

// Member is a console user and their project memberships
type Member struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
	// Projects maps a project id to the member's group in that project
	Projects map[string]GroupID `mapstructure:"projects"`
}

// HasPermission reports whether member, acting with cfg, may perform p on
// resource. A missing member or config grants nothing.
func HasPermission(member *Member, cfg GroupConfig, resource string, p Permission) bool {
	if member == nil || cfg == nil {
		return false
	}
	return cfg.Allows(resource, p)
}

// Access is the access section of the configuration file
type Access struct {
	CurrentUser Member                 `mapstructure:"currentUser"`
	Groups      map[string]GroupConfig `mapstructure:"groups"`
}

// UserService resolves the current user and their permissions
type UserService interface {
	CurrentUser(ctx context.Context) (Member, error)
	CurrentUserGroup(ctx context.Context, projectID string) (GroupID, error)
	GroupConfig(ctx context.Context, group GroupID) (GroupConfig, error)
}

// Service is a UserService backed by static access configuration
type Service struct {
	access Access
}

// NewService creates a Service over access
func NewService(access Access) *Service {
	return &Service{access: access}
}

// CurrentUser returns the configured user
func (s *Service) CurrentUser(ctx context.Context) (Member, error) {
	if err := ctx.Err(); err != nil {
		return Member{}, err
	}
	if s.access.CurrentUser.Name == "" && s.access.CurrentUser.Email == "" {
		return Member{}, errdef.NewUnauthorized("no current user configured")
	}
	return s.access.CurrentUser, nil
}

// CurrentUserGroup returns the current user's group in projectID. Project ids
// are matched case-insensitively.
func (s *Service) CurrentUserGroup(ctx context.Context, projectID string) (GroupID, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	for id, group := range user.Projects {
		if strings.EqualFold(id, projectID) {
			return group, nil
		}
	}
	return "", errdef.NewNotFound("user %s is not a member of project %s", displayName(user), projectID)
}

// GroupConfig returns the permissions of group
func (s *Service) GroupConfig(ctx context.Context, group GroupID) (GroupConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for name, cfg := range s.access.Groups {
		if strings.EqualFold(name, string(group)) {
			return cfg, nil
		}
	}
	return nil, errdef.NewNotFound("group %s not found", group)
}

func displayName(m Member) string {
	if m.Email != "" {
		return m.Email
	}
	return m.Name
}
