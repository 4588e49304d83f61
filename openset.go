package astar

import "container/heap"

type frontierItem[NodeType comparable] struct {
	Node         NodeType
	Priority     int
	Seq          uint64
	IndexInQueue int
}

type frontierQueue[NodeType comparable] []*frontierItem[NodeType]

func (queue frontierQueue[NodeType]) Len() int { return len(queue) }

// Less orders by priority, then by insertion sequence so earlier pushes win ties.
func (queue frontierQueue[NodeType]) Less(i, j int) bool {
	if queue[i].Priority != queue[j].Priority {
		return queue[i].Priority < queue[j].Priority
	}
	return queue[i].Seq < queue[j].Seq
}

func (queue frontierQueue[NodeType]) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *frontierQueue[NodeType]) Push(x any) {
	item := x.(*frontierItem[NodeType])
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *frontierQueue[NodeType]) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// OpenSet is a min-priority queue keyed by (priority, insertion sequence)
// that also tracks which nodes are pending.
type OpenSet[NodeType comparable] struct {
	queue   frontierQueue[NodeType]
	pending map[NodeType]*frontierItem[NodeType]
	nextSeq uint64
}

// NewOpenSet returns an empty open set.
func NewOpenSet[NodeType comparable]() *OpenSet[NodeType] {
	return &OpenSet[NodeType]{pending: make(map[NodeType]*frontierItem[NodeType])}
}

// Push inserts node with the given priority and the next sequence number.
// It does not deduplicate; callers check Contains first.
func (f *OpenSet[NodeType]) Push(node NodeType, priority int) {
	item := &frontierItem[NodeType]{Node: node, Priority: priority, Seq: f.nextSeq}
	heap.Push(&f.queue, item)
	f.nextSeq++
	f.pending[node] = item
}

// Lower reduces the priority of a pending node, keeping its sequence number.
// It reports false if node is not pending or priority is not lower.
func (f *OpenSet[NodeType]) Lower(node NodeType, priority int) bool {
	item, ok := f.pending[node]
	if !ok || priority >= item.Priority {
		return false
	}
	item.Priority = priority
	heap.Fix(&f.queue, item.IndexInQueue)
	return true
}

// PopMin removes the node with the smallest (priority, sequence) key.
// ok is false when the frontier is empty.
func (f *OpenSet[NodeType]) PopMin() (node NodeType, ok bool) {
	if len(f.queue) == 0 {
		return node, false
	}
	item := heap.Pop(&f.queue).(*frontierItem[NodeType])
	delete(f.pending, item.Node)
	return item.Node, true
}

// Contains reports whether node is pending.
func (f *OpenSet[NodeType]) Contains(node NodeType) bool {
	_, ok := f.pending[node]
	return ok
}

func (f *OpenSet[NodeType]) Len() int { return len(f.queue) }

func (f *OpenSet[NodeType]) IsEmpty() bool { return len(f.queue) == 0 }
