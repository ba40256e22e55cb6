package generate_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/generate"
	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/output"
	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/rules"
)

func testDocument(t *testing.T) *rules.Document {
	t.Helper()
	doc, err := rules.NewDocument([]*rules.RuleSet{
		{
			Name:        "adServers",
			Description: "Known ad servers",
			Rules: []rules.Rule{
				{URL: "ads.example.com", Action: rules.ActionDeny, Description: "Ads"},
				{URL: "cdn.example.com", Action: rules.ActionAllow, Modifiers: []string{"script"}, Description: "Exceptions"},
			},
		},
		{
			Name:        "trackers",
			Description: "Tracking endpoints",
			Rules: []rules.Rule{
				{URL: "track.example.net", Action: rules.ActionDeny, Modifiers: []string{"third-party"}, Description: "Trackers"},
				{URL: "broken.example.net", Action: "block", Description: "Trackers"},
			},
		},
	})
	require.NoError(t, err)
	return doc
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, time.March, 5, 14, 30, 9, 0, time.UTC)
	}
}

func TestRun(t *testing.T) {
	fsys := memfs.New()
	gen := generate.NewGenerator(output.NewWriter(fsys), &generate.Config{
		Source: "src",
		Now:    fixedClock(),
	})

	summaries, err := gen.Run(testDocument(t))
	require.NoError(t, err)

	require.Len(t, summaries, 3)
	assert.Equal(t, generate.ListSummary{Name: "fullList", File: "/fullList.txt", Rules: 3, Skipped: 1}, summaries[0])
	assert.Equal(t, generate.ListSummary{Name: "adServers", File: "/adServers.txt", Rules: 2}, summaries[1])
	assert.Equal(t, generate.ListSummary{Name: "trackers", File: "/trackers.txt", Rules: 1, Skipped: 1}, summaries[2])

	adServers := "# Known ad servers\n" +
		"# Time generated: 05-03-2024 14:30:09 UTC\n" +
		"# Source: src\n" +
		"\n" +
		"# Ads\n" +
		"||ads.example.com^\n" +
		"\n" +
		"# Exceptions\n" +
		"@@||cdn.example.com^$script\n" +
		"\n"
	trackers := "# Tracking endpoints\n" +
		"# Time generated: 05-03-2024 14:30:09 UTC\n" +
		"# Source: src\n" +
		"\n" +
		"# Trackers\n" +
		"||track.example.net^$third-party\n" +
		"\n"

	b, err := util.ReadFile(fsys, "adServers.txt")
	require.NoError(t, err)
	assert.Equal(t, adServers, string(b))

	b, err = util.ReadFile(fsys, "trackers.txt")
	require.NoError(t, err)
	assert.Equal(t, trackers, string(b))

	// The combined list is every block concatenated in declaration order.
	b, err = util.ReadFile(fsys, "fullList.txt")
	require.NoError(t, err)
	assert.Equal(t, adServers+trackers, string(b))

	// No manifest unless requested.
	_, err = util.ReadFile(fsys, output.ManifestName)
	assert.Error(t, err)
}

func TestRunIsRepeatable(t *testing.T) {
	fsys := memfs.New()
	gen := generate.NewGenerator(output.NewWriter(fsys), &generate.Config{
		Source: "src",
		Now:    fixedClock(),
	})

	_, err := gen.Run(testDocument(t))
	require.NoError(t, err)
	first, err := util.ReadFile(fsys, "fullList.txt")
	require.NoError(t, err)

	_, err = gen.Run(testDocument(t))
	require.NoError(t, err)
	second, err := util.ReadFile(fsys, "fullList.txt")
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRunStrictNotes(t *testing.T) {
	var notes []string
	fsys := memfs.New()
	gen := generate.NewGenerator(output.NewWriter(fsys), &generate.Config{
		Source: "src",
		Strict: true,
		Now:    fixedClock(),
		Note: func(format string, args ...any) {
			notes = append(notes, fmt.Sprintf(format, args...))
		},
	})

	_, err := gen.Run(testDocument(t))
	require.NoError(t, err)

	require.Len(t, notes, 1)
	assert.Contains(t, notes[0], "broken.example.net")
	assert.Contains(t, notes[0], `"block"`)
}

func TestRunSilentByDefault(t *testing.T) {
	var notes []string
	fsys := memfs.New()
	gen := generate.NewGenerator(output.NewWriter(fsys), &generate.Config{
		Source: "src",
		Now:    fixedClock(),
		Note: func(format string, args ...any) {
			notes = append(notes, fmt.Sprintf(format, args...))
		},
	})

	_, err := gen.Run(testDocument(t))
	require.NoError(t, err)
	assert.Empty(t, notes, "skipped rules are silent unless strict mode is on")
}

func TestRunWritesManifest(t *testing.T) {
	fsys := memfs.New()
	gen := generate.NewGenerator(output.NewWriter(fsys), &generate.Config{
		Source:   "src",
		Manifest: true,
		Now:      fixedClock(),
	})

	_, err := gen.Run(testDocument(t))
	require.NoError(t, err)

	b, err := util.ReadFile(fsys, output.ManifestName)
	require.NoError(t, err)

	var m output.Manifest
	require.NoError(t, yaml.Unmarshal(b, &m))
	assert.Equal(t, "src", m.Source)
	assert.True(t, m.Generated.Equal(fixedClock()()))
	require.Len(t, m.Lists, 3)
	assert.Equal(t, output.ManifestEntry{Name: "fullList", File: "/fullList.txt", Rules: 3, Skipped: 1}, m.Lists[0])
}

func TestRunEmptyDocument(t *testing.T) {
	fsys := memfs.New()
	gen := generate.NewGenerator(output.NewWriter(fsys), &generate.Config{
		Source: "src",
		Now:    fixedClock(),
	})

	doc, err := rules.NewDocument(nil)
	require.NoError(t, err)

	summaries, err := gen.Run(doc)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	b, err := util.ReadFile(fsys, "fullList.txt")
	require.NoError(t, err)
	assert.Empty(t, string(b))
}
