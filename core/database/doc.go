// Package database opens the optional SQL database that backs the file
// update history (see core/history).
//
// MySQL and SQLite are supported through GORM. The connection is optional:
// commands log a warning and keep running without history when it fails.
package database
