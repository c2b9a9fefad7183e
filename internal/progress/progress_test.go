package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCIReporterLines(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf, Description: "Indexing book"}

	r.Start(2)
	r.Update(1, "intro.md")
	r.Update(2, "01-introduction-to-physical-ai.md")
	r.Finish()

	assert.Equal(t, "Indexing book: 2 item(s)\n"+
		"[1/2] intro.md\n"+
		"[2/2] 01-introduction-to-physical-ai.md\n"+
		"Indexing book: done\n", buf.String())
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	_, ok := NewReporter("x").(*CIReporter)
	assert.True(t, ok)
}

func TestOrNop(t *testing.T) {
	assert.Equal(t, Nop{}, OrNop(nil))
	r := &CIReporter{}
	assert.Same(t, r, OrNop(r))
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := StartSpinner(&buf, "Thinking...")
	s.Stop()
	s.Stop()
}
