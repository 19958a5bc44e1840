// Package closure resolves a category id into its transitive closure:
// the id itself plus every descendant id, at unbounded tree depth.
package closure

import (
	"context"
	"log"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/contracts"
)

// maxDepth bounds the traversal defensively. The domain model does not
// enforce acyclic parent links, so both the descent and the ancestor walk
// carry a visited guard and a depth cap.
const maxDepth = 32

// Resolver computes category closures against a CategorySource.
// All provider failures during resolution are fail-open: they are logged
// and treated as "no children", so the worst case is an incomplete set,
// never an error. The result always contains the requested id.
type Resolver struct {
	categories contracts.CategorySource
}

// NewResolver creates a closure resolver backed by the given source.
func NewResolver(categories contracts.CategorySource) *Resolver {
	return &Resolver{categories: categories}
}

// Resolve returns the closure of categoryID in traversal order.
// With familyMode set, it first climbs parent links to the top-level
// ancestor and returns that ancestor's closure instead, so a leaf category
// expands to its whole family.
func (r *Resolver) Resolve(ctx context.Context, categoryID string, familyMode bool) []string {
	root := categoryID
	if familyMode {
		root = r.findRoot(ctx, categoryID)
	}

	visited := map[string]bool{root: true}
	ids := []string{root}
	r.collect(ctx, root, visited, &ids, 0)

	// The requested id must always be part of the result, even when a
	// partial family traversal failed to reach it.
	if !visited[categoryID] {
		ids = append(ids, categoryID)
	}
	return ids
}

// collect appends the ids of all descendants of id, depth-first. The
// visited guard is checked before recursing, which also de-duplicates
// shared children under diamond topologies.
func (r *Resolver) collect(ctx context.Context, id string, visited map[string]bool, ids *[]string, depth int) {
	if depth >= maxDepth {
		log.Printf("closure: depth cap reached under category %s, truncating traversal", id)
		return
	}

	children, err := r.categories.ListChildren(ctx, id)
	if err != nil {
		log.Printf("closure: error fetching children for category %s: %v", id, err)
		return
	}

	for _, child := range children {
		if visited[child] {
			continue
		}
		visited[child] = true
		*ids = append(*ids, child)
		r.collect(ctx, child, visited, ids, depth+1)
	}
}

// findRoot walks parent links upward until a category without a parent is
// found. Any lookup failure falls back to treating the original id as its
// own root.
func (r *Resolver) findRoot(ctx context.Context, categoryID string) string {
	current := categoryID
	seen := map[string]bool{current: true}

	for depth := 0; depth < maxDepth; depth++ {
		cat, err := r.categories.GetCategory(ctx, current)
		if err != nil {
			log.Printf("closure: error resolving ancestor of category %s: %v", categoryID, err)
			return categoryID
		}
		if cat.ParentID == nil || *cat.ParentID == "" {
			return current
		}
		parent := *cat.ParentID
		if seen[parent] {
			log.Printf("closure: parent cycle detected at category %s", parent)
			return categoryID
		}
		seen[parent] = true
		current = parent
	}

	log.Printf("closure: ancestor chain of category %s exceeds depth cap", categoryID)
	return categoryID
}
