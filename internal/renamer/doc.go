// Package renamer applies a batch of reconciled rename proposals to the
// files on disk. It refuses batches with unresolved duplicate targets,
// skips files already at their final name, and reports per-file failures
// without aborting the rest of the batch.
package renamer
