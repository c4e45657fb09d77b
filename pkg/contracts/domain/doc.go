// Package domain holds the in-memory table model shared by the loader, the
// cleaning stages and the writers.
package domain
