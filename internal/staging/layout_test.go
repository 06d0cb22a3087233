package staging

import (
	"testing"

	"github.com/spf13/afero"

	"bilimux/internal/metadata"
	"bilimux/internal/testsupport"
)

var (
	season = metadata.Season{Title: "Show", Dir: "/dl/s_100"}
	ep     = metadata.Episode{ID: metadata.Normal(1), Dir: "/dl/s_100/c_1", TypeTag: "80"}
)

func TestDefaultLayoutStagesBelowOutput(t *testing.T) {
	l := NewLayout("", "/out")
	if !l.Owned || l.Root != "/out/.bilimux-staging" {
		t.Fatalf("unexpected layout %+v", l)
	}
	if got := l.SubtitlePath(season, ep); got != "/out/.bilimux-staging/s_100/c_1/subtitle.ass" {
		t.Fatalf("unexpected subtitle path %q", got)
	}
	if got := l.ContainerPath(season, ep); got != "/out/.bilimux-staging/s_100/c_1/episode.mkv" {
		t.Fatalf("unexpected container path %q", got)
	}
}

func TestConfiguredLayout(t *testing.T) {
	l := NewLayout("/stage", "/out")
	if l.Owned {
		t.Fatal("configured staging dir must not be owned")
	}
	if got := l.SubtitlePath(season, ep); got != "/stage/s_100/c_1/subtitle.ass" {
		t.Fatalf("unexpected subtitle path %q", got)
	}
	if got := l.ContainerPath(season, ep); got != "/stage/s_100/c_1/episode.mkv" {
		t.Fatalf("unexpected container path %q", got)
	}
}

func TestCleanEpisodeRemovesIntermediates(t *testing.T) {
	fs := afero.NewMemMapFs()
	l := NewLayout("/stage", "/out")
	testsupport.WriteText(t, fs, l.SubtitlePath(season, ep), "ass")
	testsupport.WriteText(t, fs, l.ContainerPath(season, ep), "mkv")

	for range 2 {
		if err := l.CleanEpisode(fs, season, ep); err != nil {
			t.Fatalf("CleanEpisode: %v", err)
		}
	}
	testsupport.AssertMissing(t, fs, "/stage/s_100/c_1")
	testsupport.AssertExists(t, fs, "/stage/s_100")

	l.CleanSeason(fs, season)
	testsupport.AssertMissing(t, fs, "/stage/s_100")
	testsupport.AssertExists(t, fs, "/stage")
}

func TestCleanSeasonRemovesOwnedRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	l := NewLayout("", "/out")
	testsupport.WriteText(t, fs, l.SubtitlePath(season, ep), "ass")
	testsupport.WriteText(t, fs, "/out/Show/Show EP01.mkv", "mkv")

	if err := l.CleanEpisode(fs, season, ep); err != nil {
		t.Fatalf("CleanEpisode: %v", err)
	}
	l.CleanSeason(fs, season)
	testsupport.AssertMissing(t, fs, "/out/.bilimux-staging")
	testsupport.AssertExists(t, fs, "/out/Show/Show EP01.mkv")
}

func TestCleanSeasonKeepsBusyRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	l := NewLayout("", "/out")
	other := metadata.Season{Title: "Other", Dir: "/dl/s_200"}
	testsupport.WriteText(t, fs, l.SubtitlePath(other, metadata.Episode{Dir: "/dl/s_200/c_1"}), "ass")

	l.CleanSeason(fs, season)
	testsupport.AssertExists(t, fs, "/out/.bilimux-staging/s_200/c_1/subtitle.ass")
}
