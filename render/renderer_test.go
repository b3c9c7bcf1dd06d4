package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rickchristie/trajwatch"
	"github.com/rickchristie/trajwatch/config"
	"github.com/rickchristie/trajwatch/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testRunConfig() *config.RunConfig {
	return config.NewRunConfig("7",
		config.Param{Key: "intent", Value: "Find <cheap> shoes"},
		config.Param{Key: "start_url", Value: "http://shop.local"},
	)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestOpen_WritesShell(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	path := filepath.Join(dir, "render_7.html")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte("stale report from a previous run"), 0o644))

	r, err := Open(testRunConfig(), dir, trajwatch.ModeAccessibilityTree)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, path, r.Path())
	assert.Equal(t, 0, r.Steps())

	doc := readFile(t, path)
	assert.NotContains(t, doc, "stale report")
	assert.True(t, strings.HasPrefix(doc, documentHead))
	assert.True(t, strings.HasSuffix(doc, documentTail))
	assert.Contains(t, doc, "intent: Find &lt;cheap&gt; shoes\n")

	header, err := ReadRunHeader(path)
	require.NoError(t, err)
	assert.Equal(t,
		"task_id: 7\nintent: Find <cheap> shoes\nstart_url: http://shop.local\n",
		header)
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name      string
		run       *config.RunConfig
		mode      trajwatch.Mode
		expectErr error
	}{
		{
			name:      "unknown mode",
			run:       testRunConfig(),
			mode:      trajwatch.Mode("coordinates"),
			expectErr: trajwatch.ErrUnknownMode,
		},
		{
			name:      "nil run config",
			run:       nil,
			mode:      trajwatch.ModeAccessibilityTree,
			expectErr: config.ErrInvalidRunConfig,
		},
		{
			name:      "empty task id",
			run:       &config.RunConfig{},
			mode:      trajwatch.ModeAccessibilityTree,
			expectErr: config.ErrInvalidRunConfig,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Open(tc.run, t.TempDir(), tc.mode)
			assert.ErrorIs(t, err, tc.expectErr)
			assert.Nil(t, r)
		})
	}
}

func TestRenderStep_AppendsSectionsInOrder(t *testing.T) {
	r, err := Open(testRunConfig(), t.TempDir(), trajwatch.ModeAccessibilityTree)
	require.NoError(t, err)
	defer r.Close()

	steps := []struct {
		action *trajwatch.Action
		state  *trajwatch.State
	}{
		{tt.Click("12"), tt.PageState("http://shop.local/", "12")},
		{tt.Type("5", "red shoes"), tt.PageState("http://shop.local/search", "5")},
		{tt.Scroll("down"), tt.PageState("http://shop.local/results?q=red")},
	}
	meta := trajwatch.NewMetaData()

	previous := readFile(t, r.Path())
	for i, step := range steps {
		require.NoError(t, r.RenderStep(step.action, step.state, meta, false))
		meta.ActionHistory = append(meta.ActionHistory, step.action.Type.String())

		doc := readFile(t, r.Path())
		assert.True(t, strings.HasSuffix(doc, documentTail), "step %d", i+1)

		// Everything rendered before is kept byte for byte.
		previousBody := strings.TrimSuffix(previous, documentTail)
		assert.True(t, strings.HasPrefix(doc, previousBody), "step %d", i+1)

		sections, err := ReadSections(r.Path())
		require.NoError(t, err)
		require.Len(t, sections, i+1)
		for j, s := range sections {
			assert.Equal(t, j+1, s.Step)
			assert.Equal(t, steps[j].state.URL, s.URL)
		}
		previous = doc
	}
	assert.Equal(t, 3, r.Steps())

	sections, err := ReadSections(r.Path())
	require.NoError(t, err)
	assert.Equal(t, "None", sections[0].PreviousAction)
	assert.Equal(t, "click", sections[1].PreviousAction)
	assert.Equal(t, "type", sections[2].PreviousAction)
	assert.Equal(t, "click [12] where [12] is [12] button 'Element 12'",
		sections[0].PredictedAction)
	assert.Equal(t, "scroll [down]", sections[2].PredictedAction)
	assert.Equal(t, "Tab 0 (current): http://shop.local/search", sections[1].Observation)
}

func TestRenderStep_EscapedContentKeepsBody(t *testing.T) {
	r, err := Open(testRunConfig(), t.TempDir(), trajwatch.ModeAccessibilityTree)
	require.NoError(t, err)
	defer r.Close()

	hostile := &trajwatch.State{
		URL:         `http://x.local/"><script>`,
		Observation: trajwatch.Observation{Text: "</pre></body></html> trailing"},
	}
	action := tt.None("</body>")

	require.NoError(t, r.RenderStep(action, hostile, nil, false))
	require.NoError(t, r.RenderStep(action, hostile, nil, false))

	doc := readFile(t, r.Path())
	assert.Equal(t, 1, strings.Count(doc, "</body>"))

	sections, err := ReadSections(r.Path())
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "</pre></body></html> trailing", sections[1].Observation)
	assert.Equal(t, `http://x.local/"><script>`, sections[1].URL)
}

func TestRenderStep_Image(t *testing.T) {
	r, err := Open(testRunConfig(), t.TempDir(), trajwatch.ModeSetOfMark)
	require.NoError(t, err)
	defer r.Close()

	state := tt.PageState("http://shop.local/")
	state.Observation.Image = &llms.BinaryContent{Data: []byte{1, 2, 3}}

	require.NoError(t, r.RenderStep(tt.Click("1"), state, nil, true))
	require.NoError(t, r.RenderStep(tt.Click("1"), state, nil, false))

	doc := readFile(t, r.Path())
	assert.Equal(t, 1, strings.Count(doc, "<img "))
	assert.Contains(t, doc, `src="data:image/png;base64,AQID"`)

	sections, err := ReadSections(r.Path())
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.True(t, sections[0].HasImage)
	assert.False(t, sections[1].HasImage)
}

func TestRenderStep_MissingMetadataUsesPlaceholder(t *testing.T) {
	r, err := Open(testRunConfig(), t.TempDir(), trajwatch.ModeAccessibilityTree)
	require.NoError(t, err)
	defer r.Close()

	state := &trajwatch.State{URL: "http://shop.local/"}
	require.NoError(t, r.RenderStep(tt.Hover("404"), state, trajwatch.NewMetaData(), false))

	sections, err := ReadSections(r.Path())
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "hover [404] where [404] is No match found", sections[0].PredictedAction)
}

func TestRenderStep_ObservationDiff(t *testing.T) {
	r, err := Open(testRunConfig(), t.TempDir(), trajwatch.ModeAccessibilityTree,
		WithObservationDiff())
	require.NoError(t, err)
	defer r.Close()

	first := &trajwatch.State{
		URL:         "http://shop.local/",
		Observation: trajwatch.Observation{Text: "[1] link 'Home'\n[2] button 'Cart (0)'"},
	}
	second := &trajwatch.State{
		URL:         "http://shop.local/",
		Observation: trajwatch.Observation{Text: "[1] link 'Home'\n[2] button 'Cart (1)'"},
	}

	require.NoError(t, r.RenderStep(tt.Click("2"), first, nil, false))
	assert.NotContains(t, readFile(t, r.Path()), "observation_diff")

	require.NoError(t, r.RenderStep(tt.Click("2"), second, nil, false))
	doc := readFile(t, r.Path())
	assert.Equal(t, 1, strings.Count(doc, "observation_diff"))
	assert.Contains(t, doc, "@@ -1,2 +1,2 @@")
	assert.Contains(t, doc, "-[2] button &#39;Cart (0)&#39;")
	assert.Contains(t, doc, "+[2] button &#39;Cart (1)&#39;")
}

func TestRenderStep_MarkdownPredictions(t *testing.T) {
	r, err := Open(testRunConfig(), t.TempDir(), trajwatch.ModeAccessibilityTree,
		WithMarkdownPredictions())
	require.NoError(t, err)
	defer r.Close()

	action := tt.Click("1")
	action.RawPrediction = "The **cart** is element 1."
	require.NoError(t, r.RenderStep(action, tt.PageState("http://shop.local/", "1"), nil, false))

	assert.Contains(t, readFile(t, r.Path()), "<strong>cart</strong>")
}

func TestRenderStep_InvalidStep(t *testing.T) {
	r, err := Open(testRunConfig(), t.TempDir(), trajwatch.ModeAccessibilityTree)
	require.NoError(t, err)
	defer r.Close()

	assert.ErrorIs(t, r.RenderStep(nil, tt.PageState("http://a"), nil, false), ErrInvalidStep)
	assert.ErrorIs(t, r.RenderStep(tt.Click("1"), nil, nil, false), ErrInvalidStep)
	assert.Equal(t, 0, r.Steps())
}

func TestRenderStep_CorruptDocument(t *testing.T) {
	r, err := Open(testRunConfig(), t.TempDir(), trajwatch.ModeAccessibilityTree)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, os.WriteFile(r.Path(), []byte("overwritten"), 0o644))

	err = r.RenderStep(tt.Click("1"), tt.PageState("http://a"), nil, false)
	assert.ErrorIs(t, err, ErrCorruptDocument)
}

func TestClose(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r, err := Open(testRunConfig(), t.TempDir(), trajwatch.ModeAccessibilityTree,
		WithLogger(zap.New(core)))
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	err = r.RenderStep(tt.Click("1"), tt.PageState("http://a"), nil, false)
	assert.ErrorIs(t, err, ErrClosed)

	messages := make([]string, 0, logs.Len())
	for _, e := range logs.All() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{"opened trajectory report", "closed trajectory report"}, messages)
}

func TestWithRenderer(t *testing.T) {
	dir := t.TempDir()
	errBoom := errors.New("boom")

	var captured *Renderer
	err := WithRenderer(testRunConfig(), dir, trajwatch.ModeAccessibilityTree,
		func(r *Renderer) error {
			captured = r
			if err := r.RenderStep(tt.Click("1"), tt.PageState("http://a"), nil, false); err != nil {
				return err
			}
			return errBoom
		})

	assert.ErrorIs(t, err, errBoom)
	require.NotNil(t, captured)
	assert.ErrorIs(t,
		captured.RenderStep(tt.Click("1"), tt.PageState("http://a"), nil, false),
		ErrClosed)

	sections, err := ReadSections(filepath.Join(dir, FileName("7")))
	require.NoError(t, err)
	assert.Len(t, sections, 1)
}

func TestWithRenderer_OpenError(t *testing.T) {
	called := false
	err := WithRenderer(nil, t.TempDir(), trajwatch.ModeAccessibilityTree,
		func(r *Renderer) error {
			called = true
			return nil
		})

	assert.ErrorIs(t, err, config.ErrInvalidRunConfig)
	assert.False(t, called)
}
