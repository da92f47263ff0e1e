// Package reconciler implements the file plugin: a Reconciler owns one
// configuration file and the key whose distributed value it must hold.
//
// # Status
//
// Status reads the file and classifies it as up to date, out of sync or
// missing. Any read failure counts as missing. When the content differs, the
// expected value is written to a private temporary file (removed afterwards)
// and the output of
//
//	diff -u <file> <etcd-conman-value>
//
// is printed to the operator output, indented by five spaces.
//
// # Updates
//
// OnConfigChanged truncates and rewrites the file, reloads the dependent
// service (sprout unless overridden) and then notifies the host alarm.
// Failures are returned; nothing is retried.
package reconciler
