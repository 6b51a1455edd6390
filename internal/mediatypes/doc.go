// Package mediatypes declares the video container formats the contact-sheet
// pipeline accepts.
//
// It is a dependency-free foundation shared by the scanner and the job
// orchestrator: primitive constants and pure extension checks, nothing else.
//
// Use IsVideo to test a path against the supported set:
//
//	if mediatypes.IsVideo(path) {
//	    // enqueue for processing
//	}
//
// The supported set is fixed to the containers the decoding toolchain
// (ffmpeg/ffprobe) reliably demuxes: mp4, avi, wmv, mkv, mov, m4v, webm.
package mediatypes
