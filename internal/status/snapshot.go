package status

// Snapshot is an immutable read of the decoded controller state.
// It is exactly what the HTTP responder and the mirror are allowed to deliver.
type Snapshot struct {
	OpData      string
	OpMode      string // already truncated to 1 char when Legacy
	ServiceData string
	Legacy      bool

	// Seq increases on every store mutation.
	Seq uint64
}

// Health summarizes data freshness for the mirror status block.
type Health struct {
	Code       uint16
	StaleCount uint16
}
