package testsupport

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// Episode describes an episode bundle written by WriteEpisode. Zero values
// produce a complete bundle with an English JSON subtitle.
type Episode struct {
	// Dir is the bundle directory name inside the season directory.
	Dir        string
	Title      string
	Index      string
	IndexTitle string
	TypeTag    string
	// Language and SubtitleName place Subtitle at <bundle>/<Language>/<SubtitleName>.
	Language     string
	SubtitleName string
	Subtitle     string
	NoVideo      bool
	NoAudio      bool
	NoSubtitle   bool
	NoDescriptor bool
}

// Cue is one Bilibili JSON subtitle line.
type Cue struct {
	From    float64 `json:"from"`
	To      float64 `json:"to"`
	Content string  `json:"content"`
}

// BiliJSON renders cues in the Bilibili JSON subtitle format.
func BiliJSON(t testing.TB, cues ...Cue) string {
	t.Helper()
	data, err := json.Marshal(struct {
		Body []Cue `json:"body"`
	}{Body: cues})
	if err != nil {
		t.Fatalf("marshal subtitle: %v", err)
	}
	return string(data)
}

// WriteDescriptor writes an entry.json into dir.
func WriteDescriptor(t testing.TB, fs afero.Fs, dir, title, index, indexTitle, typeTag string) {
	t.Helper()
	payload := map[string]any{
		"title":    title,
		"type_tag": typeTag,
		"ep": map[string]any{
			"index":       index,
			"index_title": indexTitle,
		},
		"total_bytes": 1024,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal descriptor: %v", err)
	}
	WriteText(t, fs, filepath.Join(dir, "entry.json"), string(data))
}

// WriteEpisode writes a bundle under seasonDir and returns its path.
func WriteEpisode(t testing.TB, fs afero.Fs, seasonDir string, ep Episode) string {
	t.Helper()
	if ep.Dir == "" {
		ep.Dir = "c_" + ep.Index
	}
	if ep.TypeTag == "" {
		ep.TypeTag = "lua.flv.bili2api.80"
	}
	if ep.Language == "" {
		ep.Language = "en"
	}
	if ep.SubtitleName == "" {
		ep.SubtitleName = "sub.json"
	}
	if ep.Subtitle == "" {
		ep.Subtitle = BiliJSON(t, Cue{From: 1, To: 2.5, Content: "Line " + ep.Index})
	}

	dir := filepath.Join(seasonDir, ep.Dir)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if !ep.NoDescriptor {
		WriteDescriptor(t, fs, dir, ep.Title, ep.Index, ep.IndexTitle, ep.TypeTag)
	}
	if !ep.NoVideo {
		WriteText(t, fs, filepath.Join(dir, ep.TypeTag, "video.m4s"), "video-"+ep.Index)
	}
	if !ep.NoAudio {
		WriteText(t, fs, filepath.Join(dir, ep.TypeTag, "audio.m4s"), "audio-"+ep.Index)
	}
	if !ep.NoSubtitle {
		WriteText(t, fs, filepath.Join(dir, ep.Language, ep.SubtitleName), ep.Subtitle)
	}
	return dir
}
