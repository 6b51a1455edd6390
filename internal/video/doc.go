// Package video owns everything that touches the decoder toolchain: probing
// a file's metadata with ffprobe, planning evenly spaced sample timestamps,
// and extracting single frames with ffmpeg.
//
// A Handle is the decode context for one file. It is exclusively owned by one
// pipeline run: opened when the run starts, closed on every exit path. A
// Handle is not safe for concurrent sampling; parallelism belongs across
// files, not across timestamps within a file.
//
// Frame extraction is a small explicit state machine per timestamp:
//
//	Seek (keyframe seek + bounded decode-forward) → LinearScan (capped) → Miss
//
// The budget and ceiling are visible parameters (Budget) so the bounded-
// latency policy is testable. A miss is non-fatal; the grid assembler
// substitutes a placeholder cell.
package video
