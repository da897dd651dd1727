package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
)

// DashboardView is what a reviewer sees: the filtered records plus "showing X of Y".
type DashboardView struct {
	Items  []domain.Submission
	Shown  int
	Total  int
	Filter FilterConfig
}

// Dashboard caches one reviewer's record collection. It is loaded on first activation,
// refetched on Refresh or after MarkStale, and patched locally after a delete.
type Dashboard struct {
	mu         sync.Mutex
	source     RecordLister
	records    []domain.Submission
	loaded     bool
	stale      bool
	filter     FilterConfig
	selectedID string

	// staleGen counts MarkStale calls. A refresh only clears stale if none happened while it fetched.
	staleGen uint64
	// fetching counts refreshes waiting on the source; removed collects ids deleted meanwhile
	// so an older snapshot cannot bring them back.
	fetching int
	removed  map[string]struct{}
}

func NewDashboard(source RecordLister) *Dashboard {
	return &Dashboard{source: source}
}

// Activate loads the collection if it was never loaded or was marked stale.
func (d *Dashboard) Activate(ctx context.Context) error {
	d.mu.Lock()
	fresh := d.loaded && !d.stale
	d.mu.Unlock()
	if fresh {
		return nil
	}
	return d.Refresh(ctx)
}

// Refresh refetches the whole collection. On failure the previous collection is kept.
// Deletes and invalidations that land while the fetch is running are not lost.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	gen := d.staleGen
	if d.fetching == 0 {
		d.removed = make(map[string]struct{})
	}
	d.fetching++
	d.mu.Unlock()

	records, err := d.source.List(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.fetching--
	removed := d.removed
	if d.fetching == 0 {
		d.removed = nil
	}
	if err != nil {
		return fmt.Errorf("load feedback: %w", err)
	}

	if len(removed) > 0 {
		kept := make([]domain.Submission, 0, len(records))
		for _, r := range records {
			if _, gone := removed[r.ID]; !gone {
				kept = append(kept, r)
			}
		}
		records = kept
	}
	d.records = records
	d.loaded = true
	if d.staleGen == gen {
		d.stale = false
	}
	return nil
}

func (d *Dashboard) MarkStale() {
	d.mu.Lock()
	d.stale = true
	d.staleGen++
	d.mu.Unlock()
}

func (d *Dashboard) SetFilter(cfg FilterConfig) {
	d.mu.Lock()
	d.filter = cfg
	d.mu.Unlock()
}

func (d *Dashboard) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()
	items := Filter(d.records, d.filter)
	return DashboardView{
		Items:  items,
		Shown:  len(items),
		Total:  len(d.records),
		Filter: d.filter,
	}
}

// Open selects a record for inspection. Only records in the collection can be opened.
func (d *Dashboard) Open(id string) (domain.Submission, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	record, ok := d.find(id)
	if !ok {
		return domain.Submission{}, ErrNotFound
	}
	d.selectedID = id
	return record, nil
}

// Selected returns the record open for inspection, if it is still in the collection.
func (d *Dashboard) Selected() (domain.Submission, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selectedID == "" {
		return domain.Submission{}, false
	}
	return d.find(d.selectedID)
}

func (d *Dashboard) Close() {
	d.mu.Lock()
	d.selectedID = ""
	d.mu.Unlock()
}

// Remove drops id from the collection and closes the inspection view if it showed id.
func (d *Dashboard) Remove(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selectedID == id {
		d.selectedID = ""
	}
	if d.fetching > 0 {
		d.removed[id] = struct{}{}
	}
	for i := range d.records {
		if d.records[i].ID == id {
			kept := make([]domain.Submission, 0, len(d.records)-1)
			kept = append(kept, d.records[:i]...)
			d.records = append(kept, d.records[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Dashboard) find(id string) (domain.Submission, bool) {
	for _, r := range d.records {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Submission{}, false
}

// DashboardRegistry holds one Dashboard per reviewer.
type DashboardRegistry struct {
	mu     sync.Mutex
	source RecordLister
	boards map[string]*Dashboard
}

func NewDashboardRegistry(source RecordLister) *DashboardRegistry {
	return &DashboardRegistry{source: source, boards: make(map[string]*Dashboard)}
}

// Get returns the reviewer's dashboard, creating an unloaded one on first use.
func (r *DashboardRegistry) Get(owner string) *Dashboard {
	r.mu.Lock()
	defer r.mu.Unlock()
	board, ok := r.boards[owner]
	if !ok {
		board = NewDashboard(r.source)
		r.boards[owner] = board
	}
	return board
}

func (r *DashboardRegistry) InvalidateAll() {
	for _, board := range r.snapshot() {
		board.MarkStale()
	}
}

func (r *DashboardRegistry) RemoveRecord(id string) {
	for _, board := range r.snapshot() {
		board.Remove(id)
	}
}

func (r *DashboardRegistry) snapshot() []*Dashboard {
	r.mu.Lock()
	defer r.mu.Unlock()
	boards := make([]*Dashboard, 0, len(r.boards))
	for _, b := range r.boards {
		boards = append(boards, b)
	}
	return boards
}
