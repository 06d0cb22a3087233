package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename and
// normalizes it to NFC so titles typed on different platforms land in the
// same directory. Slashes, backslashes, colons, and asterisks become dashes;
// other unsafe characters and control characters are removed. Leading dots
// are stripped so a title never produces a hidden entry.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = norm.NFC.String(name)
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, fileNameReplacer.Replace(name))
	return strings.TrimSpace(strings.TrimLeft(name, "."))
}
