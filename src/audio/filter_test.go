package audio

import "testing"

func filterAll(t *testing.T, blockSize int, input []float64) []float64 {
	t.Helper()
	settings := newTestSettings(t, 48000, blockSize)
	f := NewFilter(settings)
	expectNoError(t, f.Bind(ParamSignal, newSequenceNode(blockSize, input)))
	return collect(f, len(input)/blockSize)
}

func TestFilterDifference(t *testing.T) {
	out := filterAll(t, 4, []float64{1, 1, 1, 1, 3, 3, 1, 1})
	expectBlock(t, out, 0.5, 0, 0, 0, 1, 0, -1, 0)
}

func TestFilterBlockSplitContinuity(t *testing.T) {
	inputs := [][]float64{
		{2, 2, 2, 2, 2, 2, 2, 2},
		{0.1, -0.4, 0.9, 0.3, -0.7, 0.2, 0.5, -0.6},
	}
	for _, input := range inputs {
		whole := filterAll(t, 8, input)
		for _, blockSize := range []int{1, 2, 4} {
			expectBlock(t, filterAll(t, blockSize, input), whole...)
		}
	}
}

func TestFilterControlRateInput(t *testing.T) {
	settings := newTestSettings(t, 48000, 4)
	f := NewFilter(settings)
	expectNoError(t, f.Bind(ParamSignal, NewConstant(2)))
	expectBlock(t, f.Evaluate(0), 1, 0, 0, 0)
	expectBlock(t, f.Evaluate(1), 0, 0, 0, 0)
}
