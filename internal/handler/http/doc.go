// Package http implements the trigger API of go-pass-sync.
//
// The API lets an operator link and unlink providers, change their sync
// frequency, start a manual session and read the session logs. Tracing,
// access logging, compression and bearer-token checks are middleware in
// this package; handlers delegate to the service layer.
package http
