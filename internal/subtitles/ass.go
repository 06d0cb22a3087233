package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"bilimux/internal/services"
)

const assHeader = `[Script Info]
Title: Bilibili Subtitle
ScriptType: v4.00+
WrapStyle: 0
ScaledBorderAndShadow: yes
YCbCr Matrix: TV.601
PlayResX: 1920
PlayResY: 1080

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Noto Sans,100,&H00FFFFFF,&H00FFFF00,&H00002208,&H7F000000,0,0,0,0,100,100,0,0,1,5,1.5,2,96,96,65,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

var assLineBreaks = strings.NewReplacer("\r\n", `\N`, "\r", `\N`, "\n", `\N`)

// EncodeASS writes doc as an ASS script using the fixed Default style.
func EncodeASS(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(assHeader); err != nil {
		return services.Wrap(ErrCodec, "subtitle", "encode ass", "", err)
	}
	for _, cue := range doc.Cues {
		if _, err := fmt.Fprintf(bw, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(cue.Start), formatASSTime(cue.End), assLineBreaks.Replace(cue.Text)); err != nil {
			return services.Wrap(ErrCodec, "subtitle", "encode ass", "", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return services.Wrap(ErrCodec, "subtitle", "encode ass", "", err)
	}
	return nil
}

// formatASSTime renders d as H:MM:SS.cc rounded to the nearest centisecond.
func formatASSTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := (d.Milliseconds() + 5) / 10
	h := cs / 360000
	m := cs / 6000 % 60
	s := cs / 100 % 60
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs%100)
}
