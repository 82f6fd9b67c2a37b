package search

import "time"

// Limits describes how one StartSearch call is bounded.
type Limits struct {
	// Infinite disables time management entirely; the search runs until
	// Stop is called or Depth/Nodes is reached.
	Infinite bool
	// Ponder behaves like Infinite: no deadline is set, and nothing clears
	// it once the search has started, so a ponder search runs until Stop.
	Ponder bool

	Depth int
	Nodes uint64

	TimeControl bool
	WhiteTime   time.Duration
	BlackTime   time.Duration
	WhiteInc    time.Duration
	BlackInc    time.Duration
	MoveTime    time.Duration
	MovesToGo   int
}
