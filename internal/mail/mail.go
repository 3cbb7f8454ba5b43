package mail

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Message is a fully composed email, ready to be handed to a Sender.
type Message struct {
	From    string
	ReplyTo string
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a Message through a mail relay. Implementations must be
// safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Result is the outcome of a single dispatch.
type Result struct {
	Err     error
	Elapsed time.Duration
}

func (r Result) OK() bool {
	return r.Err == nil
}

const tracerName = "github.com/christianselig/contact-relay/internal/mail"

// Dispatch sends msg on its own goroutine and delivers exactly one Result on
// the returned channel. The send is detached from ctx cancellation, so a
// client that hangs up does not abort a delivery already in flight.
func Dispatch(ctx context.Context, s Sender, msg *Message) <-chan Result {
	ch := make(chan Result, 1)

	go func() {
		ch <- send(context.WithoutCancel(ctx), s, msg)
	}()

	return ch
}

// The span is ended before the Result is handed back.
func send(ctx context.Context, s Sender, msg *Message) Result {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "mail.send")
	defer span.End()

	span.SetAttributes(attribute.Int("mail.recipients", len(msg.To)))

	start := time.Now()
	err := s.Send(ctx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
	}

	return Result{Err: err, Elapsed: time.Since(start)}
}
