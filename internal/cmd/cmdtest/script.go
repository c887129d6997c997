// Package cmdtest provides a scripted cmd.Runner for backend tests.
package cmdtest

import (
	"context"
	"strings"
	"sync"

	"github.com/raphi011/vcs/internal/cmd"
)

// UnscriptedStatus is returned for invocations that have no scripted answer.
const UnscriptedStatus = 127

type answer struct {
	output string
	status int
}

// Script answers invocations by their argument list (program name excluded,
// arguments joined by single spaces) and records every call.
// Multiple answers for the same arguments are consumed in order; the last one
// repeats.
type Script struct {
	mu      sync.Mutex
	answers map[string][]answer
	calls   []string
	dirs    []string
}

// New creates an empty script.
func New() *Script {
	return &Script{answers: make(map[string][]answer)}
}

// OK scripts a successful invocation.
func (s *Script) OK(args, output string) *Script {
	return s.On(args, output, 0)
}

// Fail scripts a failing invocation.
func (s *Script) Fail(args, output string, status int) *Script {
	return s.On(args, output, status)
}

// On scripts an invocation with an explicit status.
func (s *Script) On(args, output string, status int) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[args] = append(s.answers[args], answer{output: output, status: status})
	return s
}

// Run implements cmd.Runner.
func (s *Script) Run(_ context.Context, dir, name string, args ...string) cmd.Result {
	key := strings.Join(args, " ")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, key)
	s.dirs = append(s.dirs, dir)

	res := cmd.Result{Args: append([]string{name}, args...), Dir: dir}
	queue, ok := s.answers[key]
	if !ok || len(queue) == 0 {
		res.Output = "unexpected command: " + name + " " + key
		res.Status = UnscriptedStatus
		return res
	}
	a := queue[0]
	if len(queue) > 1 {
		s.answers[key] = queue[1:]
	}
	res.Output = a.output
	res.Status = a.status
	return res
}

// Calls returns the argument lists of all invocations in order.
func (s *Script) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Dirs returns the working directory of every invocation in order.
func (s *Script) Dirs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dirs...)
}

// Called reports whether an invocation with exactly these arguments happened.
func (s *Script) Called(args string) bool {
	for _, c := range s.Calls() {
		if c == args {
			return true
		}
	}
	return false
}
