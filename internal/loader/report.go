package loader

import "log/slog"

// Item records the outcome of one sample entry.
type Item struct {
	Kind   string
	ID     string
	Reason string
}

// Report is the structured outcome of a batch load. Per-item failures never
// abort a batch; callers inspect the report to decide whether the load was
// complete.
type Report struct {
	Created []Item
	Skipped []Item
	Failed  []Item
}

// OK reports whether every item was created.
func (r *Report) OK() bool {
	return len(r.Failed) == 0 && len(r.Skipped) == 0
}

// Merge appends another report's items.
func (r *Report) Merge(other *Report) {
	r.Created = append(r.Created, other.Created...)
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.Failed = append(r.Failed, other.Failed...)
}

func (r *Report) created(kind, id string) {
	r.Created = append(r.Created, Item{Kind: kind, ID: id})
	slog.Debug("created", "kind", kind, "id", id)
}

func (r *Report) skip(kind, id, reason string) {
	r.Skipped = append(r.Skipped, Item{Kind: kind, ID: id, Reason: reason})
	slog.Warn("skipping "+kind, "id", id, "reason", reason)
}

func (r *Report) fail(kind, id string, err error) {
	r.Failed = append(r.Failed, Item{Kind: kind, ID: id, Reason: err.Error()})
	slog.Error("cannot create "+kind, "id", id, "error", err)
}
