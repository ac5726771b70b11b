// Package domain defines the core entities, value types, provider contracts,
// and rule evaluation primitives used by herdcore.
package domain

import (
	"sort"
	"strings"
	"time"
)

// ParentSide selects one parental branch of a pedigree tree.
type ParentSide string

// Parental sides accepted by path tracing and ancestor scans.
const (
	// SideSire selects the paternal branch.
	SideSire ParentSide = "sire"
	// SideDam selects the maternal branch.
	SideDam ParentSide = "dam"
)

// Valid reports whether the side is one of the two recognised branches.
func (s ParentSide) Valid() bool {
	return s == SideSire || s == SideDam
}

// code returns the single-letter path-code prefix for the side.
func (s ParentSide) code() string {
	if s == SideSire {
		return "s"
	}
	return "d"
}

// PedigreeNode is one animal at a known generation offset from a tree's
// subject. Generation 0 is the subject, 1 a parent, 2 a grandparent.
// Descriptive fields are display-only and never enter any calculation.
type PedigreeNode struct {
	ID           string     `json:"id"`
	Generation   int        `json:"generation"`
	Name         string     `json:"name,omitempty"`
	Breed        string     `json:"breed,omitempty"`
	Sex          Sex        `json:"sex,omitempty"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	Facility     string     `json:"facility,omitempty"`
	GeneticIndex *float64   `json:"genetic_index,omitempty"`
}

// PedigreeTree is a bounded-depth ancestry graph rooted at one subject.
// Generations one and two occupy fixed slots; deeper ancestors live in
// Extended keyed by path code ("sss" = sire's sire's sire). Trees are built
// once per calculation and read-only afterward; nodes are never shared
// between trees.
type PedigreeTree struct {
	Subject  PedigreeNode             `json:"subject"`
	Sire     *PedigreeNode            `json:"sire,omitempty"`
	Dam      *PedigreeNode            `json:"dam,omitempty"`
	SireSire *PedigreeNode            `json:"sire_sire,omitempty"`
	SireDam  *PedigreeNode            `json:"sire_dam,omitempty"`
	DamSire  *PedigreeNode            `json:"dam_sire,omitempty"`
	DamDam   *PedigreeNode            `json:"dam_dam,omitempty"`
	Extended map[string]PedigreeNode  `json:"extended,omitempty"`
	// CommonAncestors lists identifiers appearing on both parental
	// branches, precomputed at build time.
	CommonAncestors []string `json:"common_ancestors"`
}

// NodeAt returns the node occupying the given path code, if populated.
// Codes are strings over {s,d}: "s" the sire, "dd" the dam's dam, and so on.
func (t *PedigreeTree) NodeAt(code string) (PedigreeNode, bool) {
	switch code {
	case "s":
		return deref(t.Sire)
	case "d":
		return deref(t.Dam)
	case "ss":
		return deref(t.SireSire)
	case "sd":
		return deref(t.SireDam)
	case "ds":
		return deref(t.DamSire)
	case "dd":
		return deref(t.DamDam)
	}
	node, ok := t.Extended[code]
	return node, ok
}

// SetNode places a node at the given path code, routing generations one and
// two into their fixed slots and deeper codes into Extended.
func (t *PedigreeTree) SetNode(code string, node PedigreeNode) {
	switch code {
	case "s":
		t.Sire = &node
	case "d":
		t.Dam = &node
	case "ss":
		t.SireSire = &node
	case "sd":
		t.SireDam = &node
	case "ds":
		t.DamSire = &node
	case "dd":
		t.DamDam = &node
	default:
		if t.Extended == nil {
			t.Extended = make(map[string]PedigreeNode)
		}
		t.Extended[code] = node
	}
}

// Codes returns every populated path code in deterministic order
// (shallowest first, sire before dam within a generation).
func (t *PedigreeTree) Codes() []string {
	codes := make([]string, 0, 6+len(t.Extended))
	for _, c := range []string{"s", "d", "ss", "sd", "ds", "dd"} {
		if _, ok := t.NodeAt(c); ok {
			codes = append(codes, c)
		}
	}
	ext := make([]string, 0, len(t.Extended))
	for c := range t.Extended {
		ext = append(ext, c)
	}
	sort.Slice(ext, func(i, j int) bool {
		if len(ext[i]) != len(ext[j]) {
			return len(ext[i]) < len(ext[j])
		}
		return ext[i] < ext[j]
	})
	return append(codes, ext...)
}

// SideCodes returns the populated path codes under one parental branch.
func (t *PedigreeTree) SideCodes(side ParentSide) []string {
	all := t.Codes()
	out := make([]string, 0, len(all))
	for _, c := range all {
		if strings.HasPrefix(c, side.code()) {
			out = append(out, c)
		}
	}
	return out
}

// AllAncestors returns every known ancestor node. The subject is never
// included, even if corrupt source data lists it as its own ancestor.
func (t *PedigreeTree) AllAncestors() []PedigreeNode {
	out := make([]PedigreeNode, 0, 6+len(t.Extended))
	for _, c := range t.Codes() {
		node, _ := t.NodeAt(c)
		if node.ID == t.Subject.ID {
			continue
		}
		out = append(out, node)
	}
	return out
}

// SideAncestorIDs returns the distinct ancestor identifiers under one
// parental branch, excluding the subject, in sorted order.
func (t *PedigreeTree) SideAncestorIDs(side ParentSide) []string {
	seen := make(map[string]struct{})
	for _, c := range t.SideCodes(side) {
		node, _ := t.NodeAt(c)
		if node.ID == "" || node.ID == t.Subject.ID {
			continue
		}
		seen[node.ID] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func deref(n *PedigreeNode) (PedigreeNode, bool) {
	if n == nil {
		return PedigreeNode{}, false
	}
	return *n, true
}
