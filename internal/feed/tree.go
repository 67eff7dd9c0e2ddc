package feed

import "chika/internal/models"

// MaxRenderDepth is the deepest level that still gets its own indent and
// marker color. Deeper replies keep nesting but render at this level.
const MaxRenderDepth = 6

// MarkerPalette holds the reply marker colors, indexed by clamped depth.
var MarkerPalette = []string{"#4D0C0C", "#4CAF50", "#FF9800", "#E91E63", "#9C27B0", "#00BCD4"}

// TreeOptions controls how BuildTree treats unreachable comments.
type TreeOptions struct {
	// PromoteOrphans attaches comments whose parent is missing from the
	// snapshot at the root instead of dropping them.
	PromoteOrphans bool
}

// Node is one comment in a reply tree.
type Node struct {
	Comment  *models.Comment `json:"comment"`
	Depth    int             `json:"depth"`
	Indented bool            `json:"indented"`
	Marker   string          `json:"marker"`
	Children []*Node         `json:"children"`
}

// Tree is a forest of reply trees for one post.
type Tree struct {
	Roots []*Node `json:"roots"`
	// Orphans are comments that could not be reached from any root:
	// dangling parent references, their descendants, and cycles.
	Orphans []*models.Comment `json:"-"`
}

// Count returns the number of comments placed in the tree.
func (t Tree) Count() int {
	n := 0
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, node := range nodes {
			n++
			walk(node.Children)
		}
	}
	walk(t.Roots)
	return n
}

// BuildTree nests a flat comment snapshot by parent reference. Roots are
// the comments with no parent; siblings keep the order they had in
// comments. Each comment is placed at most once.
func BuildTree(comments []*models.Comment, opts TreeOptions) Tree {
	ids := make(map[string]struct{}, len(comments))
	for _, c := range comments {
		if c != nil {
			ids[c.ID] = struct{}{}
		}
	}

	children := make(map[string][]int, len(comments))
	var roots []int
	for i, c := range comments {
		if c == nil {
			continue
		}
		if !c.IsReply() {
			roots = append(roots, i)
			continue
		}
		parent := *c.ParentCommentID
		if _, ok := ids[parent]; !ok && opts.PromoteOrphans {
			roots = append(roots, i)
			continue
		}
		children[parent] = append(children[parent], i)
	}

	placed := make([]bool, len(comments))
	var build func(i, depth int) *Node
	build = func(i, depth int) *Node {
		placed[i] = true
		c := comments[i]
		node := &Node{
			Comment:  c,
			Depth:    depth,
			Indented: depth > 0 && depth <= MaxRenderDepth,
			Marker:   MarkerFor(depth),
			Children: []*Node{},
		}
		for _, j := range children[c.ID] {
			if placed[j] {
				continue
			}
			node.Children = append(node.Children, build(j, depth+1))
		}
		return node
	}

	tree := Tree{Roots: []*Node{}}
	for _, i := range roots {
		if placed[i] {
			continue
		}
		tree.Roots = append(tree.Roots, build(i, 0))
	}
	for i, c := range comments {
		if c != nil && !placed[i] {
			tree.Orphans = append(tree.Orphans, c)
		}
	}
	return tree
}

// MarkerFor returns the marker color for a reply at depth.
func MarkerFor(depth int) string {
	if depth < 0 {
		depth = 0
	}
	if depth > MaxRenderDepth {
		depth = MaxRenderDepth
	}
	return MarkerPalette[depth%len(MarkerPalette)]
}
