package orchestrator

// HeldLocks returns the number of project directories with a live lock entry.
func (o *Orchestrator) HeldLocks() int {
	return o.locks.len()
}
