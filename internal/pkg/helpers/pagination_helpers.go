package helpers

// Message pagination bounds
const (
	DefaultBatchLength = 20
	MaxBatchLength     = 100
)

// MessageWindow converts the scroll-index/batch-length query pair into an
// SQL offset and limit. Negative indices and out-of-range batch lengths
// are clamped.
func MessageWindow(scrollIndex, batchLength int) (offset, limit int) {
	if batchLength <= 0 {
		batchLength = DefaultBatchLength
	}
	if batchLength > MaxBatchLength {
		batchLength = MaxBatchLength
	}
	if scrollIndex < 0 {
		scrollIndex = 0
	}
	return scrollIndex * batchLength, batchLength
}
