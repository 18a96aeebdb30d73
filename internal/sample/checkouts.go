package sample

import (
	"context"
	"fmt"
)

// openCheckouts leaves a few items checked out by different users so the
// seeded workspace shows work in progress.
func (l *Loader) openCheckouts(ctx context.Context) error {
	joe, err := l.as(ctx, "joe")
	if err != nil {
		return err
	}
	if err := joe.CheckOutDocument(ctx, l.opts.WorkspaceID, "LETTER-001", "A"); err != nil {
		return fmt.Errorf("check out LETTER-001 as joe: %w", err)
	}

	steve, err := l.as(ctx, "steve")
	if err != nil {
		return err
	}
	if err := steve.CheckOutPart(ctx, l.opts.WorkspaceID, "SEAT-010", "A"); err != nil {
		return fmt.Errorf("check out SEAT-010 as steve: %w", err)
	}

	rob, err := l.as(ctx, "rob")
	if err != nil {
		return err
	}
	if err := rob.CheckOutPart(ctx, l.opts.WorkspaceID, "DOOR-010", "A"); err != nil {
		return fmt.Errorf("check out DOOR-010 as rob: %w", err)
	}
	return nil
}
