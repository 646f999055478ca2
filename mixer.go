package chipsynth

// mixDown sums the per-channel scratch buffers into out with the global
// amplitude applied per sample. out must already be sliced to the samples
// being mixed; scratch buffers may be longer.
func mixDown(out []float32, scratch [][]float32, amplitude float32) {
	clear(out)
	for _, ch := range scratch {
		for i, s := range ch[:len(out)] {
			out[i] += s * amplitude
		}
	}
}
