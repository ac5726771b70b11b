package pedigree

import (
	"sort"

	"herdcore/pkg/domain"
)

// FindCommonAncestors scans the built tree for identifiers present on both
// the sire side and the dam side. It uses the tree alone, never the
// provider. The subject's own identifier is excluded even if corrupt data
// lists it as its own ancestor. The result is sorted for determinism; it is
// empty when either side has no known ancestors or the sides share nothing.
func FindCommonAncestors(tree *domain.PedigreeTree) []string {
	if tree == nil {
		return nil
	}
	sireSide := tree.SideAncestorIDs(domain.SideSire)
	if len(sireSide) == 0 {
		return nil
	}
	onSireSide := make(map[string]struct{}, len(sireSide))
	for _, id := range sireSide {
		onSireSide[id] = struct{}{}
	}

	var common []string
	for _, id := range tree.SideAncestorIDs(domain.SideDam) {
		if _, ok := onSireSide[id]; ok {
			common = append(common, id)
		}
	}
	sort.Strings(common)
	return common
}
