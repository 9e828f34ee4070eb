// Package llmtest provides a scripted llm.Completer for tests.
package llmtest

import (
	"context"
	"sync"
)

// Call is one recorded Complete invocation.
type Call struct {
	System string
	User   string
}

// Reply is one scripted answer.
type Reply struct {
	Text string
	Err  error
}

// Fake answers Complete calls from Replies in order and records every call.
// When the script runs out it returns the last reply again.
type Fake struct {
	mu      sync.Mutex
	Replies []Reply
	calls   []Call
}

func NewFake(replies ...Reply) *Fake {
	return &Fake{Replies: replies}
}

func (f *Fake) Complete(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{System: system, User: user})
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(f.Replies) == 0 {
		return "", nil
	}
	i := len(f.calls) - 1
	if i >= len(f.Replies) {
		i = len(f.Replies) - 1
	}
	return f.Replies[i].Text, f.Replies[i].Err
}

func (f *Fake) Provider() string { return "fake" }
func (f *Fake) Model() string    { return "fake-model" }

// Calls returns a copy of the recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Blocking waits for ctx to end and returns its error, for timeout tests.
type Blocking struct{}

func (Blocking) Complete(ctx context.Context, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}
