//go:build linux

package main

import "syscall"

// getTotalSystemMemory returns total system RAM in KB (Linux)
func getTotalSystemMemory() (uint64, error) {
	var si syscall.Sysinfo_t
	if err := syscall.Sysinfo(&si); err != nil {
		return 0, err
	}

	// Totalram is in units of si.Unit bytes
	totalBytes := si.Totalram * uint64(si.Unit)
	return totalBytes / 1024, nil
}
