// =============================================================================
// PWD Works Red Flag Analyzer - Classification Merger
// =============================================================================
//
// The merger accumulates findings against records and maintains the
// red/green partition. Every record starts green; the first finding
// promotes it to red and further findings only append. Promotion is
// idempotent and order-independent: the final partition depends only on
// the set of findings applied, never on the order they arrive in.
//
// =============================================================================

package engine

import (
	"sort"

	"github.com/pwdaudit/redflag/internal/types"
)

// recordState tracks one record's classification while findings accumulate.
type recordState struct {
	record *types.WorkRecord
	flags  []types.Finding
}

// Classifier merges findings into a per-record classification keyed by
// record index. It is not safe for concurrent use; the engine serializes
// access to it.
type Classifier struct {
	states map[int]*recordState
	order  []int
}

// NewClassifier seeds the partition with every record classified green.
func NewClassifier(records []*types.WorkRecord) *Classifier {
	c := &Classifier{states: make(map[int]*recordState, len(records))}
	for _, r := range records {
		if _, dup := c.states[r.RecordIndex]; dup {
			continue
		}
		c.states[r.RecordIndex] = &recordState{record: r}
		c.order = append(c.order, r.RecordIndex)
	}
	sort.Ints(c.order)
	return c
}

// Apply attaches a finding to the record at the given index, promoting it
// to red if it is still green. Unknown indices are ignored.
func (c *Classifier) Apply(recordIndex int, f types.Finding) {
	st, ok := c.states[recordIndex]
	if !ok {
		return
	}
	st.flags = append(st.flags, f)
}

// ApplyBatch attaches a batch finding to every record it implicates.
func (c *Classifier) ApplyBatch(bf types.BatchFinding) {
	f := bf.Finding
	if f.Details == nil {
		f.Details = map[string]any{}
	}
	for _, ar := range bf.AffectedRecords {
		c.Apply(ar.RecordIndex, f)
	}
}

// Finalize produces the red and green partitions, each ordered by record
// index. Within a red entry, flags keep their application order.
func (c *Classifier) Finalize() (red, green []types.RecordSummary) {
	for _, idx := range c.order {
		st := c.states[idx]
		entry := types.RecordSummary{
			RecordIndex:  idx,
			SrNo:         st.record.SrNo,
			BudgetItemNo: st.record.BudgetItemNo,
			NameOfWork:   st.record.NameOfWork,
		}
		if len(st.flags) > 0 {
			entry.Flags = st.flags
			red = append(red, entry)
		} else {
			green = append(green, entry)
		}
	}
	return red, green
}
