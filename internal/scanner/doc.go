// Package scanner discovers candidate video files for contact-sheet
// generation.
//
// It walks a directory tree recursively, filters by the supported extension
// set (package mediatypes), skips hidden files and directories, and returns
// a sorted list of absolute paths. Discovery is sequential; parallelism
// lives in the job orchestrator where the expensive decode work happens.
package scanner
