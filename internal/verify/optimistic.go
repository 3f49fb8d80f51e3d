package verify

// Apply runs a tentative local mutation ahead of a remote commit. When the
// commit fails the pre-mutation snapshot is restored, so callers never hold a
// local state the backend rejected. T must be a value type whose copy
// semantics capture the full record (true for the models in this module).
func Apply[T any](target *T, mutate func(*T), commit func(T) error) error {
	snapshot := *target
	mutate(target)
	if err := commit(*target); err != nil {
		*target = snapshot
		return err
	}
	return nil
}
