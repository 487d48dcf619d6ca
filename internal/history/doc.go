// Package history records applied rename batches in a SQLite journal so
// they can be listed and undone later. Each batch carries a UUID, the
// directory it was applied in, and every from/to pair in application order.
package history
