package catalog

// Error context strings
const (
	ErrContextFailedToLoadPity  = "failed to load pity configs"
	ErrContextFailedToListCases = "failed to list cases"
)

// Log Messages
const (
	LogMsgCatalogValidated = "Catalog validated"
)
