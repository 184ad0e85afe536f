// Package status collects per-frame overlay metrics for the HUD and logs
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry is the central metrics facade
// The renderer caches pointers at construction; the frame loop writes atomics directly
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Summary renders the metrics whose keys start with prefix as "key=value" pairs,
// sorted by type then key, with the prefix stripped
func (r *Registry) Summary(prefix string) string {
	var b strings.Builder
	sep := func() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
	}
	r.Strings.Range(func(key string, v *AtomicString) {
		if name, ok := strings.CutPrefix(key, prefix); ok {
			sep()
			fmt.Fprintf(&b, "%s=%s", name, v.Load())
		}
	})
	r.Ints.Range(func(key string, v *atomic.Int64) {
		if name, ok := strings.CutPrefix(key, prefix); ok {
			sep()
			fmt.Fprintf(&b, "%s=%d", name, v.Load())
		}
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		if name, ok := strings.CutPrefix(key, prefix); ok {
			sep()
			fmt.Fprintf(&b, "%s=%.2f", name, v.Get())
		}
	})
	return b.String()
}
