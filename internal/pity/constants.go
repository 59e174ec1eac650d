package pity

// Log Messages
const (
	LogMsgPityActivated = "Pity override activated"
)
