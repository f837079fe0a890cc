package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSineWavetable(t *testing.T) {
	wt := NewSineWavetable(8)
	expectEqual(t, wt.Len(), 8)
	for i := 0; i < 8; i++ {
		expectNearlyEqual(t, wt.at(float64(i)), math.Sin(2*math.Pi*float64(i)/8))
	}
	expectNearlyEqual(t, wt.at(1.5), (wt.values[1]+wt.values[2])/2)
	expectNearlyEqual(t, wt.at(7.5), wt.values[7]/2)
	expectNearlyEqual(t, wt.at(10), wt.values[2])
}

func TestPartialWavetable(t *testing.T) {
	one := NewPartialWavetable(16, 1, func(n int, phase float64) float64 {
		return math.Sin(float64(n)*phase) / float64(n)
	})
	sine := NewSineWavetable(16)
	for i := range sine.values {
		expectNearlyEqual(t, one.values[i], sine.values[i])
	}
}

func TestWavetableSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sine.wt")
	wt := NewSineWavetable(32)
	expectNoError(t, wt.Save(path))

	loaded, err := LoadWavetable(path)
	expectNoError(t, err)
	expectEqual(t, loaded.Len(), 32)
	for i := range wt.values {
		expectEqual(t, loaded.values[i], wt.values[i])
	}
}

func TestLoadWavetableErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadWavetable(filepath.Join(dir, "missing.wt"))
	if err == nil {
		t.Error("expected error for missing file")
	}
	truncated := filepath.Join(dir, "truncated.wt")
	expectNoError(t, os.WriteFile(truncated, []byte{0, 0, 0, 4, 1, 2}, 0666))
	_, err = LoadWavetable(truncated)
	if err == nil {
		t.Error("expected error for truncated file")
	}
}
