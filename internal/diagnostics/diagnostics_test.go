package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"", Info},
		{"info", Info},
		{"QUIET", Silent},
		{"error", Error},
		{" warn ", Warn},
		{"verbose", Verbose},
		{"debug", Debug},
		{"nonsense", Info},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestSystem_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(Warn, &buf)

	d.Debug("debug %d", 1)
	d.Info("info %d", 2)
	d.Warn("warn %d", 3)
	d.Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "[WARN] warn 3")
	assert.Contains(t, out, "[ERROR] error 4")
}

func TestSystem_ListAndIndent(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(Info, &buf)

	d.List("top")
	d.Indent()
	d.List("nested")
	d.Unindent()
	d.Unindent()
	d.List("back")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"- top", "  - nested", "- back"}, lines)
}

func TestSystem_SummarySortsKeys(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(Info, &buf)

	d.Summary("Done", map[string]interface{}{"b": 2, "a": 1})

	out := buf.String()
	assert.Contains(t, out, "Done")
	assert.Less(t, strings.Index(out, "a: 1"), strings.Index(out, "b: 2"))
}

func TestSystem_SilentWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(Silent, &buf)

	d.Error("boom")
	d.Section("title")
	d.Plain("plain")

	assert.Empty(t, buf.String())
}
