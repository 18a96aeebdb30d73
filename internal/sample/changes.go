package sample

import (
	"context"
	"fmt"

	"github.com/openplm/plmseed/internal/plm"
)

// createChangeItems files a request, an issue and an order against the seeded
// car parts.
func (l *Loader) createChangeItems(ctx context.Context) error {
	request := plm.ChangeRequest{
		Name:          "REQ-001",
		Description:   "Replace the front seat fabric with leather",
		Category:      plm.ChangePerfective,
		Assignee:      "rob",
		AffectedParts: []string{"SEAT-010"},
	}
	if err := l.admin.CreateChangeRequest(ctx, l.opts.WorkspaceID, request); err != nil {
		return fmt.Errorf("create request %s: %w", request.Name, err)
	}

	issue := plm.ChangeIssue{
		Name:        "ISSUE-001",
		Description: "Engine mount vibrates above 3000 rpm",
		Priority:    plm.PriorityHigh,
		Assignee:    "steve",
	}
	if err := l.admin.CreateChangeIssue(ctx, l.opts.WorkspaceID, issue); err != nil {
		return fmt.Errorf("create issue %s: %w", issue.Name, err)
	}

	order := plm.ChangeOrder{
		Name:        "ORDER-001",
		Description: "Roll out the seat upgrade",
		Category:    plm.ChangePerfective,
		Assignee:    "bill",
	}
	if err := l.admin.CreateChangeOrder(ctx, l.opts.WorkspaceID, order); err != nil {
		return fmt.Errorf("create order %s: %w", order.Name, err)
	}
	return nil
}
