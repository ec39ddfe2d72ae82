// Package types defines the Store and Table interfaces, entity types,
// filter criteria, and standard error values for the Swingset playground
// store.
package types
