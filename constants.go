package shaperlut

// Environment variables that override DefaultConfig.
const (
	EnvSteps = "SHAPERLUT_STEPS"
	EnvBits  = "SHAPERLUT_BITS"
	EnvName  = "SHAPERLUT_NAME"
)

// Rate mismatch policy names, as accepted by ParseRateMismatchPolicy.
const (
	policyNameFail     = "fail"
	policyNameWarn     = "warn"
	policyNameResample = "resample"
)
