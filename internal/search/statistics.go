package search

// Statistics holds counters that are not essential to a functioning
// search but are useful for judging move-ordering quality and tuning.
type Statistics struct {
	Nodes       uint64
	QNodes      uint64
	Evaluations uint64
	TTHits      uint64
	TTMisses    uint64
	TTCuts      uint64
	BetaCuts    uint64
	BetaCuts1st uint64
	SeePrunes   uint64
	Checkmates  uint64
	Stalemates  uint64
}
