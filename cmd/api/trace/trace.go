// Package trace carries the request id and span counter of one inbound API call.
// Span 0 is the inbound request; every outbound call (Gemini, API client) takes the next span.
package trace

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

type traceKey struct{}

type span struct {
	requestID string
	seq       atomic.Int64
}

func (s *span) current() string {
	return strconv.FormatInt(max(s.seq.Load(), 0), 10)
}

func (s *span) next() string {
	return strconv.FormatInt(max(s.seq.Add(1), 1), 10)
}

// GenerateID returns a dash-less random UUID.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func WithRequestAndSpan(ctx context.Context, requestID string, initialSpan int64) context.Context {
	s := &span{requestID: requestID}
	s.seq.Store(initialSpan)
	return context.WithValue(ctx, traceKey{}, s)
}

func spanFrom(ctx context.Context) *span {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(traceKey{}).(*span)
	return s
}

func RequestIDFromContext(ctx context.Context) string {
	if s := spanFrom(ctx); s != nil {
		return s.requestID
	}
	return ""
}

// CurrentSpanID does not advance the sequence.
func CurrentSpanID(ctx context.Context) string {
	if s := spanFrom(ctx); s != nil {
		return s.current()
	}
	return "0"
}

// NextSpanID advances the sequence and returns (requestID, spanID).
// Outside a traced request it returns a fresh request id with span "1".
func NextSpanID(ctx context.Context) (string, string) {
	if s := spanFrom(ctx); s != nil {
		return s.requestID, s.next()
	}
	return GenerateID(), "1"
}
