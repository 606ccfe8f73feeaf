// Package stats computes read-only summary projections over the stream store.
package stats
