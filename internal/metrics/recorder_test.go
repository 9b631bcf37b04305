package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testRecorder struct {
	NoopRecorder
	stageDurations map[string]int
	stageResults   map[string]map[ResultLabel]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{stageDurations: map[string]int{}, stageResults: map[string]map[ResultLabel]int{}}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}

func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}

func TestStage(t *testing.T) {
	r := newTestRecorder()

	assert.NoError(t, Stage(r, "load", func() error { return nil }))
	boom := errors.New("boom")
	assert.ErrorIs(t, Stage(r, "resolve", func() error { return boom }), boom)

	assert.Equal(t, 1, r.stageDurations["load"])
	assert.Equal(t, 1, r.stageResults["load"][ResultSuccess])
	assert.Equal(t, 1, r.stageResults["resolve"][ResultFatal])
}
