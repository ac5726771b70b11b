package domain

import (
	"reflect"
	"testing"
)

func TestSetNodeRoutesFixedSlotsAndExtended(t *testing.T) {
	tree := &PedigreeTree{Subject: PedigreeNode{ID: "subject"}}
	cases := []struct {
		code string
		id   string
	}{
		{"s", "sire"},
		{"d", "dam"},
		{"ss", "sire-sire"},
		{"sd", "sire-dam"},
		{"ds", "dam-sire"},
		{"dd", "dam-dam"},
		{"sss", "deep"},
	}
	for _, tc := range cases {
		tree.SetNode(tc.code, PedigreeNode{ID: tc.id, Generation: len(tc.code)})
	}

	for _, tc := range cases {
		node, ok := tree.NodeAt(tc.code)
		if !ok {
			t.Fatalf("expected node at %q", tc.code)
		}
		if node.ID != tc.id {
			t.Fatalf("node at %q: got %s, want %s", tc.code, node.ID, tc.id)
		}
	}
	if tree.Sire == nil || tree.Sire.ID != "sire" {
		t.Fatalf("sire slot not populated: %+v", tree.Sire)
	}
	if len(tree.Extended) != 1 {
		t.Fatalf("expected one extended node, got %d", len(tree.Extended))
	}
	if _, ok := tree.NodeAt("dds"); ok {
		t.Fatalf("unexpected node at unpopulated code")
	}
}

func TestCodesDeterministicOrder(t *testing.T) {
	tree := &PedigreeTree{Subject: PedigreeNode{ID: "x"}}
	for _, code := range []string{"dds", "sss", "d", "ss", "s", "ssd"} {
		tree.SetNode(code, PedigreeNode{ID: "a-" + code, Generation: len(code)})
	}
	got := tree.Codes()
	want := []string{"s", "d", "ss", "dds", "ssd", "sss"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("codes order: got %v, want %v", got, want)
	}
}

func TestSideAncestorIDsExcludesSubjectAndOtherSide(t *testing.T) {
	tree := &PedigreeTree{Subject: PedigreeNode{ID: "x"}}
	tree.SetNode("s", PedigreeNode{ID: "s1", Generation: 1})
	tree.SetNode("ss", PedigreeNode{ID: "g1", Generation: 2})
	tree.SetNode("sd", PedigreeNode{ID: "x", Generation: 2}) // corrupt self-reference
	tree.SetNode("d", PedigreeNode{ID: "d1", Generation: 1})

	got := tree.SideAncestorIDs(SideSire)
	want := []string{"g1", "s1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sire-side ancestors: got %v, want %v", got, want)
	}
	if ids := tree.SideAncestorIDs(SideDam); !reflect.DeepEqual(ids, []string{"d1"}) {
		t.Fatalf("dam-side ancestors: got %v", ids)
	}
}

func TestAllAncestorsNeverIncludesSubject(t *testing.T) {
	tree := &PedigreeTree{Subject: PedigreeNode{ID: "x"}}
	tree.SetNode("s", PedigreeNode{ID: "s1", Generation: 1})
	tree.SetNode("d", PedigreeNode{ID: "x", Generation: 1}) // corrupt self-reference
	for _, node := range tree.AllAncestors() {
		if node.ID == "x" {
			t.Fatalf("subject leaked into ancestor list")
		}
	}
}

func TestParentSideValidation(t *testing.T) {
	if !SideSire.Valid() || !SideDam.Valid() {
		t.Fatalf("expected canonical sides to validate")
	}
	if ParentSide("maternal").Valid() {
		t.Fatalf("unexpected valid side")
	}
}
