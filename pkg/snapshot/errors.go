package snapshot

// InvalidSnapshotError reports a snapshot that violates the producer
// contract, such as a missing tag identifier. The reconciler fails fast with
// this error instead of guessing at intent.
type InvalidSnapshotError struct {
	Reason error
}

func (e *InvalidSnapshotError) Error() string {
	if e == nil || e.Reason == nil {
		return "snapshot: invalid snapshot"
	}
	return "snapshot: invalid snapshot: " + e.Reason.Error()
}

func (e *InvalidSnapshotError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Reason
}
