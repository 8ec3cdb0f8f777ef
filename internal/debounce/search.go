package debounce

import (
	"strings"
	"sync"
	"time"
)

// SearchInput collects free-text keystrokes and hands the final value to
// apply once typing pauses.
type SearchInput struct {
	debouncer *Debouncer
	apply     func(string)

	mu    sync.Mutex
	value string
}

// NewSearchInput creates a search input that calls apply with the trimmed
// value after delay of inactivity. An empty value means "clear the search".
func NewSearchInput(delay time.Duration, initial string, apply func(string)) *SearchInput {
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return &SearchInput{
		debouncer: NewDebouncer(delay),
		apply:     apply,
		value:     initial,
	}
}

// Set records the current text and restarts the quiet period.
func (s *SearchInput) Set(value string) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	s.debouncer.Debounce(s.fire)
}

// Value returns the text as last typed.
func (s *SearchInput) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Flush applies the current text without waiting.
func (s *SearchInput) Flush() {
	s.debouncer.Immediate(s.fire)
}

// Reset clears the text and drops any pending search without applying it.
func (s *SearchInput) Reset() {
	s.debouncer.Cancel()
	s.mu.Lock()
	s.value = ""
	s.mu.Unlock()
}

// Stop drops any pending search.
func (s *SearchInput) Stop() {
	s.debouncer.Cancel()
}

func (s *SearchInput) fire() {
	s.apply(strings.TrimSpace(s.Value()))
}
