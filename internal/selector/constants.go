package selector

// Log Messages
const (
	LogMsgPoolFallthrough  = "No symbol selected by cumulative walk, falling back to first pool entry"
	LogMsgTableFallthrough = "No payout sampled by cumulative walk, falling back to first table entry"
)
