package entropy

const (
	// ServerSeedBytes is the server seed length; 32 bytes = 256 bits
	ServerSeedBytes = 32

	// MantissaBits is how many leading digest bits feed the [0,1) mapping.
	// 53 matches float64 mantissa precision so every value is exact.
	MantissaBits = 53

	// VerifyTolerance guards against representation drift when a recorded
	// value round-tripped through a store's floating-point column
	VerifyTolerance = 1e-12
)
