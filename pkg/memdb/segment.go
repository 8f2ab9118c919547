package memdb

import (
	"fmt"
	"sort"

	"k8s.io/apimachinery/pkg/labels"

	"github.com/rhettc/idascripts/pkg/addrdb"
)

// Segment is a named address range with free-form label metadata, typically
// the loader-reported sections of the binary.
type Segment struct {
	Name   string
	Range  addrdb.Range
	Labels labels.Set
}

type Segments interface {
	Add(name string, rng addrdb.Range, lbls labels.Set) error
	Get(name string) (Segment, error)
	At(ea uint64) (Segment, bool)
	GetByLabel(selector labels.Selector) []Segment
	List() []Segment
	Count() int
}

func newSegments() *segments {
	return &segments{
		byName: map[string]Segment{},
	}
}

type segments struct {
	byName map[string]Segment
}

func (r *segments) Add(name string, rng addrdb.Range, lbls labels.Set) error {
	if name == "" {
		return fmt.Errorf("segment name cannot be empty")
	}
	if rng.Empty() {
		return fmt.Errorf("segment %s has empty range %s", name, rng)
	}
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("segment %s already exists", name)
	}
	if lbls == nil {
		lbls = labels.Set{}
	}
	r.byName[name] = Segment{Name: name, Range: rng, Labels: lbls}
	return nil
}

func (r *segments) Get(name string) (Segment, error) {
	s, ok := r.byName[name]
	if !ok {
		return Segment{}, fmt.Errorf("no match found for: %s", name)
	}
	return s, nil
}

func (r *segments) At(ea uint64) (Segment, bool) {
	for _, s := range r.list() {
		if s.Range.Contains(ea) {
			return s, true
		}
	}
	return Segment{}, false
}

func (r *segments) GetByLabel(selector labels.Selector) []Segment {
	var sel []Segment
	for _, s := range r.list() {
		if selector.Matches(s.Labels) {
			sel = append(sel, s)
		}
	}
	return sel
}

func (r *segments) List() []Segment { return r.list() }

func (r *segments) Count() int { return len(r.byName) }

func (r *segments) list() []Segment {
	segs := make([]Segment, 0, len(r.byName))
	for _, s := range r.byName {
		segs = append(segs, s)
	}
	sort.Slice(segs, func(i, j int) bool {
		return segs[i].Range.First < segs[j].Range.First
	})
	return segs
}
