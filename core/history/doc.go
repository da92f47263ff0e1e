// Package history keeps a record of managed file updates.
//
// Recorder implements plugin.Alarm for the command-line tools and the HTTP
// API, where no plugin host is around to receive the notification. Each
// update is logged; with a database connection it is also stored in the
// file_updates table and exposed through Recent.
package history
