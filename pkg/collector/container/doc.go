// Package container reports how many containers the local Docker runtime
// is running. A missing docker CLI, a timeout or a failing daemon all
// report zero without logging.
package container
