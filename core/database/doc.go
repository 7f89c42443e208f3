// Package database manages the embedded SQLite database used for run
// history. The driver is pure Go (glebarez/sqlite), so the binary stays
// cgo-free and portable.
package database
