// Package system samples host CPU, memory and root filesystem usage via
// gopsutil.
//
// CPU utilization is measured over a blocking 500ms window, so every
// Collect call takes at least that long. Byte counts are reported in GB
// (1024^3) with one decimal.
//
// OS query failures are returned to the caller rather than zero-filled.
package system
