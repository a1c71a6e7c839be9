// Package strategy 实现状态处理的策略
package strategy

import (
	"fmt"
	"symprove/internal/ethereum/state"
)

// BFS 广度优先搜索策略
type BFS struct {
	states []*state.GlobalState
}

func NewBFS() *BFS {
	return &BFS{
		states: make([]*state.GlobalState, 0),
	}
}

func (bfs *BFS) Size() int {
	return len(bfs.states)
}

func (bfs *BFS) HasNext() bool {
	return len(bfs.states) > 0
}

func (bfs *BFS) Pop() (*state.GlobalState, error) {
	if len(bfs.states) <= 0 {
		return nil, fmt.Errorf("state queue is empty")
	}
	state := bfs.states[0]
	bfs.states = bfs.states[1:]
	return state, nil
}

func (bfs *BFS) Push(globalState ...*state.GlobalState) error {
	bfs.states = append(bfs.states, globalState...)
	return nil
}
