package audio

import (
	"math"
	"testing"
)

func expectNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("expected no error, but got: %v", err)
	}
}

func expectEqual(t *testing.T, actual, expected interface{}) {
	t.Helper()
	if actual != expected {
		t.Errorf("expected %v, but got: %v", expected, actual)
	}
}

func expectNearlyEqual(t *testing.T, actual, expected float64) {
	t.Helper()
	if math.Abs(actual-expected) > 0.0001 {
		t.Errorf("expected %v, but got: %v", expected, actual)
	}
}

func expectBlock(t *testing.T, actual []float64, expected ...float64) {
	t.Helper()
	if len(actual) != len(expected) {
		t.Fatalf("expected %d samples, but got %d: %v", len(expected), len(actual), actual)
	}
	for i := range expected {
		if math.Abs(actual[i]-expected[i]) > 0.0001 {
			t.Errorf("sample %d: expected %v, but got: %v (block %v)", i, expected[i], actual[i], actual)
		}
	}
}

func newTestSettings(t *testing.T, sampleRate float64, blockSize int) *Settings {
	t.Helper()
	s, err := NewSettings(sampleRate, blockSize)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// countingNode fills its block with the tick number and counts productions.
type countingNode struct {
	cache    cache
	produced int
}

func newCountingNode(size int) *countingNode {
	return &countingNode{cache: newCache(size)}
}

func (n *countingNode) Evaluate(tick int64) []float64 {
	if n.cache.advance(tick) {
		n.produced++
		fill(n.cache.buf, 0, float64(tick))
	}
	return n.cache.buf
}

// sequenceNode plays back samples block by block, then zeros.
type sequenceNode struct {
	cache   cache
	samples []float64
	pos     int
}

func newSequenceNode(size int, samples []float64) *sequenceNode {
	return &sequenceNode{cache: newCache(size), samples: samples}
}

func (n *sequenceNode) Evaluate(tick int64) []float64 {
	if n.cache.advance(tick) {
		for i := range n.cache.buf {
			if n.pos < len(n.samples) {
				n.cache.buf[i] = n.samples[n.pos]
				n.pos++
			} else {
				n.cache.buf[i] = 0
			}
		}
	}
	return n.cache.buf
}
