package domain

import (
	"cmp"
	"slices"
)

// BuildCategoryTree nests a flat category list into a forest.
//
// Roots are categories without a parent. Siblings are stable-sorted by
// SortOrder, so ties keep their input order. Roots sit at level 0.
// A category whose parent id matches no category in the list is left out of
// the tree; use OrphanCategories to find those. Each id is placed at most
// once, so cycles and duplicate ids cannot recurse forever.
func BuildCategoryTree(flat []Category) []*CategoryNode {
	return BuildCategorySubtree(flat, "", 0)
}

// BuildCategorySubtree builds the children of parentID, placing them at
// level. An empty parentID selects the roots. The parent itself is not
// included.
func BuildCategorySubtree(flat []Category, parentID string, level int) []*CategoryNode {
	children := make(map[string][]Category, len(flat))
	for _, c := range flat {
		key := ""
		if !c.IsRoot() {
			key = *c.ParentID
		}
		children[key] = append(children[key], c)
	}

	visited := make(map[string]bool, len(flat))
	if parentID != "" {
		visited[parentID] = true
	}
	return attachChildren(children[parentID], children, visited, level)
}

func attachChildren(siblings []Category, children map[string][]Category, visited map[string]bool, level int) []*CategoryNode {
	sorted := slices.Clone(siblings)
	slices.SortStableFunc(sorted, func(a, b Category) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})

	nodes := make([]*CategoryNode, 0, len(sorted))
	for _, c := range sorted {
		if visited[c.ID] {
			continue
		}
		visited[c.ID] = true
		nodes = append(nodes, &CategoryNode{
			Category: c,
			Level:    level,
			Children: attachChildren(children[c.ID], children, visited, level+1),
		})
	}
	return nodes
}

// OrphanCategories returns the categories that BuildCategoryTree leaves out:
// those whose parent id is unknown, and those only reachable through a cycle.
func OrphanCategories(flat []Category) []Category {
	placed := make(map[string]bool, len(flat))
	WalkCategoryTree(BuildCategoryTree(flat), func(n *CategoryNode) {
		placed[n.ID] = true
	})

	var orphans []Category
	for _, c := range flat {
		if !placed[c.ID] {
			orphans = append(orphans, c)
		}
	}
	return orphans
}

// WalkCategoryTree visits nodes depth-first in display order.
func WalkCategoryTree(nodes []*CategoryNode, fn func(*CategoryNode)) {
	for _, n := range nodes {
		fn(n)
		WalkCategoryTree(n.Children, fn)
	}
}

// FlattenCategoryTree returns the nodes in display order, for indented lists.
func FlattenCategoryTree(nodes []*CategoryNode) []*CategoryNode {
	var out []*CategoryNode
	WalkCategoryTree(nodes, func(n *CategoryNode) {
		out = append(out, n)
	})
	return out
}
