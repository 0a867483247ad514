package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// overlapAdd is an FFT block convolver for one fixed kernel. Each input
// block is transformed, multiplied by the kernel spectrum and transformed
// back; the tails of neighbouring blocks overlap and are summed.
type overlapAdd struct {
	spectrum  []complex128
	kernelLen int
	block     int
	size      int // power of two >= block + kernelLen - 1

	plan *algofft.Plan[complex128]
	buf  []complex128
}

func newOverlapAdd(kernel []float64) (*overlapAdd, error) {
	block := max(nextPowerOf2(len(kernel)), 256)
	size := nextPowerOf2(block + len(kernel) - 1)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("conv: FFT plan of size %d: %w", size, err)
	}

	o := &overlapAdd{
		spectrum:  make([]complex128, size),
		kernelLen: len(kernel),
		block:     block,
		size:      size,
		plan:      plan,
		buf:       make([]complex128, size),
	}

	for i, v := range kernel {
		o.buf[i] = complex(v, 0)
	}
	if err := plan.Forward(o.spectrum, o.buf); err != nil {
		return nil, fmt.Errorf("conv: kernel spectrum: %w", err)
	}

	return o, nil
}

// convolve writes the full linear convolution of src with the kernel into
// dst, which must hold len(src) + kernelLen - 1 values.
func (o *overlapAdd) convolve(dst, src []float64) error {
	for i := range dst {
		dst[i] = 0
	}

	for start := 0; start < len(src); start += o.block {
		end := min(start+o.block, len(src))

		for i := range o.buf {
			o.buf[i] = 0
		}
		for i, v := range src[start:end] {
			o.buf[i] = complex(v, 0)
		}

		if err := o.plan.Forward(o.buf, o.buf); err != nil {
			return fmt.Errorf("conv: forward FFT: %w", err)
		}
		for i, k := range o.spectrum {
			o.buf[i] *= k
		}
		if err := o.plan.Inverse(o.buf, o.buf); err != nil {
			return fmt.Errorf("conv: inverse FFT: %w", err)
		}

		span := min(end-start+o.kernelLen-1, len(dst)-start)
		for i := 0; i < span; i++ {
			dst[start+i] += real(o.buf[i])
		}
	}

	return nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
