// Package commenttree turns flat comment records into reply trees and walks
// reply edges downward. It does no I/O of its own.
package commenttree

import (
	"context"

	"github.com/dmitrijs2005/clinic/internal/server/models"
)

// Build reconstructs the reply forest of one post from an unordered slice of
// comments. Roots and replies keep the order of the input. A comment whose
// parent is absent from the input is dropped together with its own replies;
// it is neither a root nor anyone's child. Build never fails.
func Build(comments []models.Comment) []*models.CommentNode {
	index := make(map[string]*models.CommentNode, len(comments))
	nodes := make([]*models.CommentNode, 0, len(comments))

	for _, c := range comments {
		n := &models.CommentNode{Comment: c, Replies: []*models.CommentNode{}}
		nodes = append(nodes, n)
		if _, dup := index[c.ID]; !dup {
			index[c.ID] = n
		}
	}

	roots := make([]*models.CommentNode, 0)
	for _, n := range nodes {
		if index[n.ID] != n {
			// duplicate id in input, first occurrence wins
			continue
		}
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		if parent, ok := index[*n.ParentID]; ok && parent != n {
			parent.Replies = append(parent.Replies, n)
		}
	}

	return roots
}

// ChildLister returns the ids of the direct replies of parentID.
type ChildLister func(ctx context.Context, parentID string) ([]string, error)

// CollectSubtree returns rootID followed by every comment reachable through
// reply edges beneath it, in breadth-first order. It uses an explicit queue
// and a visited set, so depth is unbounded and a corrupted cycle cannot make
// it loop. The first lister error aborts the walk.
func CollectSubtree(ctx context.Context, rootID string, children ChildLister) ([]string, error) {
	order := []string{rootID}
	seen := map[string]struct{}{rootID: {}}

	for frontier := 0; frontier < len(order); frontier++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ids, err := children(ctx, order[frontier])
		if err != nil {
			return nil, err
		}

		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			order = append(order, id)
		}
	}

	return order, nil
}
