package metadata

import (
	"cmp"
	"fmt"
	"strconv"
)

// Kind distinguishes regular numbered episodes from specials.
type Kind int

const (
	KindNormal Kind = iota
	KindSpecial
)

func (k Kind) String() string {
	if k == KindSpecial {
		return "special"
	}
	return "normal"
}

// EpisodeID is the identity of an episode within its season. Normal episodes
// carry an ordinal; specials carry their raw label.
type EpisodeID struct {
	Kind    Kind
	Ordinal uint64
	Label   string
}

// Normal returns the identity of the numbered episode n.
func Normal(n uint64) EpisodeID {
	return EpisodeID{Kind: KindNormal, Ordinal: n}
}

// Special returns the identity of a special episode labelled label.
func Special(label string) EpisodeID {
	return EpisodeID{Kind: KindSpecial, Label: label}
}

// ParseEpisodeID interprets the descriptor index token. Tokens that parse as a
// non-negative base-10 integer are Normal; everything else is Special with
// the token kept verbatim.
func ParseEpisodeID(token string) EpisodeID {
	if n, err := strconv.ParseUint(token, 10, 64); err == nil {
		return Normal(n)
	}
	return Special(token)
}

// IsSpecial reports whether id names a special episode.
func (id EpisodeID) IsSpecial() bool {
	return id.Kind == KindSpecial
}

// String renders the display form: EP01 for normal episodes, the label for
// specials.
func (id EpisodeID) String() string {
	if id.Kind == KindSpecial {
		return id.Label
	}
	return fmt.Sprintf("EP%02d", id.Ordinal)
}

// Compare orders normal episodes before specials, normal episodes by ordinal
// and specials by label.
func (id EpisodeID) Compare(other EpisodeID) int {
	if c := cmp.Compare(id.Kind, other.Kind); c != 0 {
		return c
	}
	if id.Kind == KindNormal {
		return cmp.Compare(id.Ordinal, other.Ordinal)
	}
	return cmp.Compare(id.Label, other.Label)
}
