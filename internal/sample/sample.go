// Package sample seeds a PLM server with a complete demo scenario: accounts,
// a workspace with groups and workflows, documents, a car product structure
// and a door product with a baseline, plus change items and a few open
// check-outs. The scenario is linear; the first hard failure aborts it.
package sample

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openplm/plmseed/internal/client"
)

// Default polling parameters for CAD conversion waits.
const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultPollTimeout  = 2 * time.Minute
)

// Options configures a demo run.
type Options struct {
	Host        string
	Login       string
	Password    string
	WorkspaceID string

	// PollInterval and PollTimeout bound the conversion wait after native
	// CAD uploads. Zero values use the defaults.
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Loader drives the demo scenario against one server.
type Loader struct {
	opts  Options
	admin *client.Client

	// clients caches per-identity logins so actions can run as different
	// users without re-authenticating.
	clients map[string]*client.Client
}

// New creates a demo loader. The caller's account is created on demand
// during Run.
func New(opts Options) *Loader {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = DefaultPollTimeout
	}
	return &Loader{opts: opts, clients: make(map[string]*client.Client)}
}

// Run executes the full scenario in order.
func (l *Loader) Run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"create accounts", l.createAccounts},
		{"create workspace", l.createWorkspace},
		{"create groups", l.createGroups},
		{"set access", l.setAccess},
		{"create workflows", l.createWorkflows},
		{"create document templates", l.createDocumentTemplates},
		{"create folders", l.createFolders},
		{"create tags", l.createTags},
		{"create milestones", l.createMilestones},
		{"create documents", l.createDocuments},
		{"create part templates", l.createPartTemplates},
		{"create car product", l.createCarProduct},
		{"create door product", l.createDoorProduct},
		{"create change items", l.createChangeItems},
		{"open checkouts", l.openCheckouts},
	}

	start := time.Now()
	for _, step := range steps {
		slog.Info("demo step", "name", step.name)
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	slog.Info("demo data loaded", "workspace", l.opts.WorkspaceID, "duration", time.Since(start).String())
	return nil
}

// Cleanup deletes the demo workspace.
func (l *Loader) Cleanup(ctx context.Context) error {
	if l.admin == nil {
		return nil
	}
	if err := l.admin.DeleteWorkspace(ctx, l.opts.WorkspaceID); err != nil {
		return fmt.Errorf("delete workspace %s: %w", l.opts.WorkspaceID, err)
	}
	slog.Info("workspace deleted", "workspace", l.opts.WorkspaceID)
	return nil
}

// as returns a client authenticated as login, reusing cached sessions. All
// demo accounts share the demo password.
func (l *Loader) as(ctx context.Context, login string) (*client.Client, error) {
	if c, ok := l.clients[login]; ok {
		return c, nil
	}
	c, err := client.Login(ctx, l.opts.Host, login, demoPassword)
	if err != nil {
		return nil, err
	}
	l.clients[login] = c
	return c, nil
}
