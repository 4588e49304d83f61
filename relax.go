package astar

// relaxProposal is a candidate improvement of the route to a neighbor.
type relaxProposal struct {
	FromNode Cell
	ToNode   Cell
	GScore   int
	FCost    int
}

func (s *Search) propose(from, to Cell) relaxProposal {
	tentativeG := s.gScore[from] + 1
	return relaxProposal{
		FromNode: from,
		ToNode:   to,
		GScore:   tentativeG,
		FCost:    tentativeG + s.heuristic(to, s.end),
	}
}

// apply records a proposal that beats the neighbor's current g-score.
// Newly pending cells are classified Frontier, except the endpoints, which
// keep their classification. A cell that is already pending has its
// frontier priority lowered instead.
func (s *Search) apply(p relaxProposal) error {
	if currentG, ok := s.gScore[p.ToNode]; ok && p.GScore >= currentG {
		return nil
	}
	s.cameFrom[p.ToNode] = p.FromNode
	s.gScore[p.ToNode] = p.GScore
	s.fScore[p.ToNode] = p.FCost

	if s.frontier.Contains(p.ToNode) {
		s.frontier.Lower(p.ToNode, p.FCost)
		return nil
	}
	s.frontier.Push(p.ToNode, p.FCost)
	if p.ToNode == s.start || p.ToNode == s.end {
		return nil
	}
	return s.grid.SetState(p.ToNode, Frontier)
}
