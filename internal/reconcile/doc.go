// Package reconcile merges the local filename guess and the online lookup
// result into one final proposed name per file, classifies each row
// (Ready, Verified, Conflict, Perfect, ...), and flags duplicate target
// names across a batch.
package reconcile
