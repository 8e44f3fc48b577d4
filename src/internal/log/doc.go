// Package log provides simple leveled logging for ztproxy.
//
// Four levels are supported: DEBUG (shown only in verbose mode), INFO, WARN
// and ERROR. Errors always go to stderr; the other levels go to stdout unless
// SetForceStdErr is enabled, which the CLI does so that stdout carries only
// command output.
//
// Level prefixes are colored with ANSI escape codes unless the NO_COLOR
// environment variable is set or SetColored(false) is called.
//
//	log.Infof("Created network %s", id)
//	log.SetVerbose(true)
//	log.Debugf("Request payload: %s", body)
//
// All functions are safe for concurrent use.
package log
