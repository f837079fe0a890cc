package audio

import "fmt"

// ----- Filter ----- //

// Filter is a first-order difference filter:
//
//	y[i] = 0.5*x[i] - 0.5*x[i-1]
//
// x[-1] is the last input sample of the previous block.
type Filter struct {
	cache  cache
	signal slot
	last   float64
}

func NewFilter(settings *Settings) *Filter {
	return &Filter{
		cache:  newCache(settings.BlockSize),
		signal: constantSlot(0),
	}
}

func (f *Filter) Bind(p Param, n Node) error {
	switch p {
	case ParamSignal:
		f.signal.bind(n)
	default:
		return fmt.Errorf("%w: filter has no %v", ErrUnknownParam, p)
	}
	return nil
}

func (f *Filter) Evaluate(tick int64) []float64 {
	if f.cache.advance(tick) {
		f.produce(tick)
	}
	return f.cache.buf
}

func (f *Filter) produce(tick int64) {
	buf := f.cache.buf
	src := f.signal.source().Evaluate(tick)
	for i := range buf {
		buf[i] = valueAt(src, i)
	}
	last := buf[len(buf)-1]
	for i := len(buf) - 1; i > 0; i-- {
		buf[i] = 0.5*buf[i] - 0.5*buf[i-1]
	}
	buf[0] = 0.5*buf[0] - 0.5*f.last
	f.last = last
}
