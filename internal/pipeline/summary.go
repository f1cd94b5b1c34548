package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/JakeFAU/areapages/internal/content"
)

// Failure records one task that reached a terminal failure.
type Failure struct {
	Key content.Key
	Err error
}

// Summary reports one pipeline pass.
type Summary struct {
	// TotalPossible is locations × services.
	TotalPossible int
	// Existing counts combinations already present before the run.
	Existing int
	// Outstanding counts combinations missing before the run; Attempted may be lower when a
	// limit applies.
	Outstanding int
	Attempted   int
	Succeeded   int
	Failed      int
	Elapsed     time.Duration
	Failures    []Failure
}

// Covered counts combinations present after the run.
func (s Summary) Covered() int {
	return s.Existing + s.Succeeded
}

// Coverage renders "covered/total coverage".
func (s Summary) Coverage() string {
	return fmt.Sprintf("%d/%d coverage", s.Covered(), s.TotalPossible)
}

// ExitCode is 0 when no task failed.
func (s Summary) ExitCode() int {
	if s.Failed > 0 {
		return 1
	}
	return 0
}

// String renders the human-readable summary block.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Attempted: %d\n", s.Attempted)
	fmt.Fprintf(&b, "Succeeded: %d\n", s.Succeeded)
	fmt.Fprintf(&b, "Failed:    %d\n", s.Failed)
	fmt.Fprintf(&b, "Elapsed:   %s\n", s.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "Coverage:  %s\n", s.Coverage())
	for _, f := range s.Failures {
		fmt.Fprintf(&b, "  failed %s: %v\n", f.Key, f.Err)
	}
	return b.String()
}
