package pedigree

import "herdcore/pkg/domain"

// TracePaths enumerates every distinct tree-path from the subject through
// one parental side to a node carrying ancestorID, returning each path's
// length in generations (1 = that side's immediate parent). The same
// ancestor can legitimately occupy several positions under one side, in
// which case one entry is returned per position. An ancestor absent from
// the populated depth yields an empty result, as does the subject's own
// identifier; a malformed side is an invalid argument.
func TracePaths(tree *domain.PedigreeTree, ancestorID string, side domain.ParentSide) ([]int, error) {
	if tree == nil {
		return nil, domain.InvalidArgumentError{Field: "tree", Reason: "must not be nil"}
	}
	if !side.Valid() {
		return nil, domain.InvalidArgumentError{Field: "side", Reason: `must be "sire" or "dam"`}
	}
	if ancestorID == "" {
		return nil, domain.InvalidArgumentError{Field: "ancestor id", Reason: "must not be empty"}
	}
	if ancestorID == tree.Subject.ID {
		return nil, nil
	}

	var lengths []int
	for _, code := range tree.SideCodes(side) {
		node, _ := tree.NodeAt(code)
		if node.ID == ancestorID {
			// A path code spells out the walk from the subject, so its
			// length is the generation distance.
			lengths = append(lengths, len(code))
		}
	}
	return lengths, nil
}
