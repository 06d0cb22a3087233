package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"th", "tha", "", "Thai", []string{"thai"}},
	{"id", "ind", "", "Indonesian", []string{"indonesian"}},
	{"vi", "vie", "", "Vietnamese", []string{"vietnamese"}},
	{"ms", "msa", "may", "Malay", []string{"malay"}},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

// primary returns the primary language subtag of a BCP-47 style tag,
// accepting both '-' and '_' separators.
func primary(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		return code[:i]
	}
	return code
}

func lookup(code string) *entry {
	code = primary(code)
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

func parse(code string) (xlanguage.Base, bool) {
	tag, err := xlanguage.Parse(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
	if err != nil {
		return xlanguage.Base{}, false
	}
	base, conf := tag.Base()
	if conf == xlanguage.No {
		return xlanguage.Base{}, false
	}
	return base, true
}

// ToISO3 converts a language tag to ISO 639-2 (3-letter).
// Returns "und" for empty or unrecognized input.
func ToISO3(code string) string {
	if strings.TrimSpace(code) == "" {
		return "und"
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if base, ok := parse(code); ok {
		if iso3 := base.ISO3(); iso3 != "" {
			return iso3
		}
	}
	return "und"
}

// DisplayName returns a human-readable language name for a tag.
// Returns "Unknown" for empty input, or the tag verbatim when unrecognized.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	if e := lookup(trimmed); e != nil {
		return e.display
	}
	if base, ok := parse(trimmed); ok {
		if name := display.English.Languages().Name(base); name != "" {
			return name
		}
	}
	return trimmed
}
