// Package server holds the HTTP server configuration.
//
// The serve command owns the Fiber application; this package only defines
// the settings it reads: the listen port and the API key that protects
// every route except the swagger UI.
package server
