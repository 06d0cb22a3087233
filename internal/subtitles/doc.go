// Package subtitles brings an episode's subtitle into Advanced SubStation
// (ASS) form for the muxer.
//
// Bundles carry one subtitle file per language directory. Bilibili's own
// JSON format, SRT, and WebVTT are decoded into a Document of timed cues and
// re-emitted as ASS with a fixed presentation profile. Files that are already
// ASS/SSA are copied through untouched.
package subtitles
