// Package logging provides opt-in file-based logging with rotation for
// docmind. When the --debug flag is set, comprehensive logs are written to
// ~/.docmind/logs/ for troubleshooting ingestion and search behavior.
//
// By default (without --debug), logging is minimal and goes to stderr only.
// In daemon mode stderr output is disabled so this process's standard
// streams stay quiet for whatever supervises it.
package logging
