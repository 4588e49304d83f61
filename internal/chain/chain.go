// Package chain walks predecessor maps produced by a best-first search.
package chain

// Walk follows cameFrom from current until it reaches a node with no
// predecessor. The walk is bounded by len(cameFrom)+1 steps so a cyclic map
// cannot loop forever; ok is false in that case.
//
// It returns the nodes in root-to-current order and the root it stopped at.
func Walk[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	current NodeType,
) (path []NodeType, root NodeType, ok bool) {
	path = make([]NodeType, 0, 16)
	for steps := 0; steps <= len(cameFrom); steps++ {
		path = append(path, current)
		previousNode, exists := cameFrom[current]
		if !exists {
			reverse(path)
			return path, current, true
		}
		current = previousNode
	}
	return nil, root, false
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
