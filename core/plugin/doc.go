// Package plugin defines the contract between configuration plugins and the
// host that loads them.
//
// A Plugin owns one managed file identified by a configuration key. The host
// asks it for the file's Status against the value held in the distributed
// store, and calls OnConfigChanged when that value changes. Alarm is the
// host's notification hook; the plugin only calls it.
//
// Registry keeps the loaded plugins addressable by key, and Manifest is the
// YAML list of managed files used to build them:
//
//	plugins:
//	  - key: sprout_json
//	    file: /etc/clearwater/sprout.json
//	    service: sprout
package plugin
