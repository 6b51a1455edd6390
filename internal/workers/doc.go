/*
Package workers determines how many pipeline workers to run.

Worker counts derive from runtime.GOMAXPROCS(0) rather than runtime.NumCPU,
so container CPU limits are respected (Go 1.19+ sets GOMAXPROCS from cgroup
constraints automatically). A multiplier adjusts for workload character:

	// Frame sampling + JPG encode: CPU work interleaved with disk reads
	numWorkers := workers.ForMixed(8)

All helpers honor the SHEET_WORKERS environment variable as an operator
override, and a hard limit parameter caps the result (0 means no cap).
*/
package workers
