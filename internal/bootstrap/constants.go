package bootstrap

// Error Messages
const (
	ErrMsgFailedToInitCatalog = "failed to initialize catalog service"
)

// Log Messages
const (
	LogMsgShuttingDownServer   = "Shutting down server"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgServerStopped        = "Server stopped"
)
