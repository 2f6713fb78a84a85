package predict

import "context"

// UsageRecorder counts completed predictions. Optional.
type UsageRecorder interface {
	Record(ctx context.Context)
}
