package uci

// optionLines renders the "option name ..." announcements a UCI GUI
// expects after "uci", one per recognized option: Hash, Clear Hash,
// Threads (reserved, must be 1), Ponder, MoveOverhead, MultiPV (reserved,
// must be 1), plus the opening-book toggle.
func optionLines() []string {
	return []string{
		"option name Hash type spin default 64 min 1 max 65536",
		"option name Clear Hash type button",
		"option name Threads type spin default 1 min 1 max 1",
		"option name Ponder type check default false",
		"option name MoveOverhead type spin default 30 min 0 max 5000",
		"option name MultiPV type spin default 1 min 1 max 1",
		"option name Use_Book type check default true",
	}
}
