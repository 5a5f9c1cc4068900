package console

import (
	"sync"
)

// Script is a scripted Console for tests: ReadLine consumes the scripted
// input lines in order and WriteLine records outputs. Once the scripted
// input is exhausted, further reads fail with ErrEndOfInput — there is no
// default line.
//
// Script is safe for concurrent use so the same instance can back an
// asynchronous run executing on worker goroutines.
type Script struct {
	mu      sync.Mutex
	inputs  []string
	outputs []string
	reads   int
	writes  int
}

// NewScript returns a Script whose ReadLine yields the given lines in order.
func NewScript(inputs ...string) *Script {
	return &Script{inputs: inputs}
}

func (s *Script) WriteLine(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	s.outputs = append(s.outputs, message)
	return nil
}

func (s *Script) ReadLine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if len(s.inputs) == 0 {
		return "", ErrEndOfInput
	}
	line := s.inputs[0]
	s.inputs = s.inputs[1:]
	return line, nil
}

// Outputs returns a copy of the lines written so far, in write order.
func (s *Script) Outputs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.outputs))
	copy(out, s.outputs)
	return out
}

// Calls reports how many reads and writes have been performed, scripted or
// not. Purity tests assert both stay zero until an interpreter runs.
func (s *Script) Calls() (reads, writes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads, s.writes
}
