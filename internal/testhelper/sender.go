package testhelper

import (
	"context"
	"sync"

	"github.com/christianselig/contact-relay/internal/mail"
)

// RecordingSender is a mail.Sender that keeps every message it is handed and
// fails with Err when it is set.
type RecordingSender struct {
	Err error

	mu   sync.Mutex
	sent []*mail.Message
	ctxs []context.Context
}

func (rs *RecordingSender) Send(ctx context.Context, msg *mail.Message) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.sent = append(rs.sent, msg)
	rs.ctxs = append(rs.ctxs, ctx)
	return rs.Err
}

func (rs *RecordingSender) Sent() []*mail.Message {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return append([]*mail.Message(nil), rs.sent...)
}

func (rs *RecordingSender) Contexts() []context.Context {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return append([]context.Context(nil), rs.ctxs...)
}
