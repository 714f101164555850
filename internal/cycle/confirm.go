package cycle

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks whether to continue to the next work interval. A false
// return stops the cycle.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// StdinConfirmer reads one line per prompt. "q" (any case, surrounding
// whitespace ignored) stops; anything else continues. EOF or a read error
// counts as quitting, so a detached stdin never runs the cycle unattended.
type StdinConfirmer struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewStdinConfirmer(in io.Reader, out io.Writer) *StdinConfirmer {
	return &StdinConfirmer{scanner: bufio.NewScanner(in), out: out}
}

func (s *StdinConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return false, err
		}
		return false, io.EOF
	}
	answer := strings.ToLower(strings.TrimSpace(s.scanner.Text()))
	return answer != "q", nil
}
