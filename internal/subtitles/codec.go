package subtitles

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/asticode/go-astisub"

	"bilimux/internal/services"
)

// assHardBreaks turns ASS line-break escapes left in event text into newlines.
var assHardBreaks = strings.NewReplacer(`\N`, "\n", `\n`, "\n")

// biliSubtitle is the JSON subtitle format served by Bilibili. Times are
// fractional seconds.
type biliSubtitle struct {
	Body []struct {
		From    float64 `json:"from"`
		To      float64 `json:"to"`
		Content string  `json:"content"`
	} `json:"body"`
}

// Decode parses r as format into a Document with cues sorted by start.
func Decode(format Format, r io.Reader) (Document, error) {
	var (
		doc Document
		err error
	)
	switch format {
	case FormatJSON:
		doc, err = decodeJSON(r)
	case FormatSRT:
		doc, err = decodeWith(r, astisub.ReadFromSRT)
	case FormatWebVTT:
		doc, err = decodeWith(r, astisub.ReadFromWebVTT)
	case FormatASS:
		doc, err = decodeWith(r, astisub.ReadFromSSA)
		for i := range doc.Cues {
			doc.Cues[i].Text = assHardBreaks.Replace(doc.Cues[i].Text)
		}
	default:
		return Document{}, services.Wrap(ErrUnknownFormat, "subtitle", "decode", format.String(), nil)
	}
	if err != nil {
		return Document{}, services.Wrap(ErrCodec, "subtitle", "decode "+format.String(), "", err)
	}
	doc.sortCues()
	return doc, nil
}

func decodeJSON(r io.Reader) (Document, error) {
	var payload biliSubtitle
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return Document{}, err
	}
	doc := Document{Cues: make([]Cue, 0, len(payload.Body))}
	for i, part := range payload.Body {
		if part.From < 0 || part.To < part.From || math.IsNaN(part.From) || math.IsNaN(part.To) {
			return Document{}, fmt.Errorf("body[%d]: invalid interval %v..%v", i, part.From, part.To)
		}
		doc.Cues = append(doc.Cues, Cue{
			Start: secondsToDuration(part.From),
			End:   secondsToDuration(part.To),
			Text:  part.Content,
		})
	}
	return doc, nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}

func decodeWith(r io.Reader, read func(io.Reader) (*astisub.Subtitles, error)) (Document, error) {
	subs, err := read(r)
	if err != nil {
		return Document{}, err
	}
	doc := Document{Cues: make([]Cue, 0, len(subs.Items))}
	for _, item := range subs.Items {
		if item == nil {
			continue
		}
		doc.Cues = append(doc.Cues, Cue{
			Start: roundMillis(item.StartAt),
			End:   roundMillis(item.EndAt),
			Text:  itemText(item),
		})
	}
	return doc, nil
}

func itemText(item *astisub.Item) string {
	lines := make([]string, 0, len(item.Lines))
	for _, line := range item.Lines {
		var b strings.Builder
		for _, li := range line.Items {
			b.WriteString(li.Text)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
