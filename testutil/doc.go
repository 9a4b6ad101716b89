// Package testutil provides fixtures shared by the package tests: temporary
// files with known contents and deterministic byte patterns.
package testutil
