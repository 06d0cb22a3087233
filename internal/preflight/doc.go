// Package preflight provides readiness checks for the ffmpeg binary and the
// directories a compile run reads and writes.
//
// The CLI "bilimux check" command renders every result, and "bilimux compile"
// refuses to start when any check fails so a run never stops halfway through
// a season for a reason that was knowable up front.
package preflight
