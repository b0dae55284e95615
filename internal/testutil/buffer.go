package testutil

import (
	"bytes"
	"strings"
	"sync"
)

// SafeBuffer collects output written from several goroutines, such as a
// logger shared by concurrently compiled jobs.
type SafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *SafeBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *SafeBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// Lines returns the non-empty lines written so far.
func (s *SafeBuffer) Lines() []string {
	var out []string
	for _, line := range strings.Split(s.String(), "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
