// Package mux drives ffmpeg to combine an episode's raw video and audio
// streams with its ASS subtitle into a Matroska container.
//
// Soft mode stream-copies every input and adds the subtitle as a tagged,
// default track. Hard mode burns the subtitle into the picture with the
// subtitles filter, which re-encodes video; audio is still copied. Output is
// written beside the target and renamed into place only when ffmpeg exits 0.
package mux
