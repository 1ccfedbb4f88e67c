package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// SubmitSeqKey carries the submission sequence number so log lines from one
// plan request can be correlated across the controller and the adapter.
const SubmitSeqKey ctxKey = "submit_seq"

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	seq, _ := ctx.Value(SubmitSeqKey).(uint64)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("seq=%d op=%s dur=%dms err=%v", seq, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("seq=%d op=%s dur=%dms", seq, name, dur.Milliseconds())
	}
}

// WithSubmitSeq tags a context with the submission sequence number.
func WithSubmitSeq(ctx context.Context, seq uint64) context.Context {
	return context.WithValue(ctx, SubmitSeqKey, seq)
}
