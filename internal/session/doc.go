// Package session keeps per-browser console state in a bounded, expiring
// cache and tracks spent form nonces.
package session
