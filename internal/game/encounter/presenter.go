package encounter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/game/progression"
)

var errNoCandidates = errors.New("no candidates to choose from")

// FirstChoice always picks the first candidate.
type FirstChoice struct{}

// Present implements combat.ChoicePresenter.
func (FirstChoice) Present(candidates []progression.Grant) (progression.Grant, error) {
	if len(candidates) == 0 {
		return progression.Grant{}, errNoCandidates
	}
	return candidates[0], nil
}

// RandomChoice picks a candidate uniformly at random.
type RandomChoice struct {
	Src dice.Source
}

// Present implements combat.ChoicePresenter.
func (r RandomChoice) Present(candidates []progression.Grant) (progression.Grant, error) {
	if len(candidates) == 0 {
		return progression.Grant{}, errNoCandidates
	}
	return candidates[r.Src.IntN(len(candidates))], nil
}

// Prompt asks on out and reads a 1-based answer from in, repeating until
// the answer is valid.
type Prompt struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompt creates an interactive presenter.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewScanner(in), out: out}
}

// Present implements combat.ChoicePresenter.
func (p *Prompt) Present(candidates []progression.Grant) (progression.Grant, error) {
	if len(candidates) == 0 {
		return progression.Grant{}, errNoCandidates
	}
	for {
		fmt.Fprintln(p.out, "Choose one:")
		for i, c := range candidates {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, c.Label())
		}
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return progression.Grant{}, fmt.Errorf("reading choice: %w", err)
			}
			return progression.Grant{}, fmt.Errorf("reading choice: %w", io.ErrUnexpectedEOF)
		}
		n, err := strconv.Atoi(strings.TrimSpace(p.in.Text()))
		if err == nil && n >= 1 && n <= len(candidates) {
			return candidates[n-1], nil
		}
		fmt.Fprintf(p.out, "%q is not a valid choice\n", p.in.Text())
	}
}
