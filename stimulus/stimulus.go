// Package stimulus scripts paddle activity for simulated keyers.
//
// A script is a list of presses. Each press holds one paddle down from At to
// Release and may add contact bounce on both edges. The textual form used on
// the command line is a comma-separated list such as
//
//	dit:0-2000,dah:3000-9000~3
//
// where the optional ~N suffix adds N bounces to each edge.
package stimulus

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sarchlab/elkey/paddle"
	"github.com/sarchlab/elkey/sim"
)

// DefaultBounceGap is the time between two bounces of a contact.
const DefaultBounceGap sim.VTimeInCycle = 40

// ErrBadScript is wrapped by all the parsing and validation errors.
var ErrBadScript = errors.New("bad stimulus script")

// Press holds one paddle down for a while.
type Press struct {
	Line      paddle.Line
	At        sim.VTimeInCycle
	Release   sim.VTimeInCycle
	Bounces   int
	BounceGap sim.VTimeInCycle
}

// Transition is a raw level change of a paddle line.
type Transition struct {
	Time  sim.VTimeInCycle
	Line  paddle.Line
	Level bool
}

// bounceSpan is how long the contact chatters after an edge.
func (p Press) bounceSpan() sim.VTimeInCycle {
	return 2 * sim.VTimeInCycle(p.Bounces) * p.BounceGap
}

// Validate checks that the press releases after its bounces settle.
func (p Press) Validate() error {
	if p.Bounces < 0 {
		return fmt.Errorf("%w: negative bounce count", ErrBadScript)
	}

	if p.Bounces > 0 && p.BounceGap == 0 {
		return fmt.Errorf("%w: bounces need a gap", ErrBadScript)
	}

	if p.Release <= p.At+p.bounceSpan() {
		return fmt.Errorf("%w: %s released at %d before settling",
			ErrBadScript, p.Line, p.Release)
	}

	return nil
}

// Transitions expands the press into raw level changes.
func (p Press) Transitions() []Transition {
	var t []Transition

	t = append(t, p.edge(p.At, true)...)
	t = append(t, p.edge(p.Release, false)...)

	return t
}

func (p Press) edge(at sim.VTimeInCycle, level bool) []Transition {
	t := []Transition{{Time: at, Line: p.Line, Level: level}}

	for i := 1; i <= p.Bounces; i++ {
		open := at + sim.VTimeInCycle(2*i-1)*p.BounceGap
		closed := at + sim.VTimeInCycle(2*i)*p.BounceGap

		t = append(t,
			Transition{Time: open, Line: p.Line, Level: !level},
			Transition{Time: closed, Line: p.Line, Level: level},
		)
	}

	return t
}

// Script is a list of presses.
type Script []Press

// Validate checks every press and that presses of the same paddle do not
// overlap.
func (s Script) Validate() error {
	last := map[paddle.Line]sim.VTimeInCycle{}
	seen := map[paddle.Line]bool{}

	presses := make(Script, len(s))
	copy(presses, s)
	sort.SliceStable(presses, func(i, j int) bool {
		return presses[i].At < presses[j].At
	})

	for _, p := range presses {
		if err := p.Validate(); err != nil {
			return err
		}

		if seen[p.Line] && p.At <= last[p.Line] {
			return fmt.Errorf("%w: overlapping %s presses at %d",
				ErrBadScript, p.Line, p.At)
		}

		seen[p.Line] = true
		last[p.Line] = p.Release + p.bounceSpan()
	}

	return nil
}

// Transitions returns the raw level changes of all presses in time order.
func (s Script) Transitions() []Transition {
	var t []Transition
	for _, p := range s {
		t = append(t, p.Transitions()...)
	}

	sort.SliceStable(t, func(i, j int) bool {
		return t[i].Time < t[j].Time
	})

	return t
}

// End returns the time of the last transition.
func (s Script) End() sim.VTimeInCycle {
	var end sim.VTimeInCycle
	for _, p := range s {
		if e := p.Release + p.bounceSpan(); e > end {
			end = e
		}
	}

	return end
}

// Parse reads a script in the command line form.
func Parse(text string) (Script, error) {
	var s Script

	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		p, err := parsePress(item)
		if err != nil {
			return nil, err
		}

		s = append(s, p)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func parsePress(item string) (Press, error) {
	name, span, ok := strings.Cut(item, ":")
	if !ok {
		return Press{}, fmt.Errorf("%w: %q has no time span", ErrBadScript, item)
	}

	line, err := paddle.ParseLine(strings.TrimSpace(name))
	if err != nil {
		return Press{}, fmt.Errorf("%w: %v", ErrBadScript, err)
	}

	p := Press{Line: line, BounceGap: DefaultBounceGap}

	span, bounces, hasBounces := strings.Cut(span, "~")
	if hasBounces {
		p.Bounces, err = strconv.Atoi(bounces)
		if err != nil {
			return Press{}, fmt.Errorf("%w: bounce count %q", ErrBadScript, bounces)
		}
	}

	at, release, ok := strings.Cut(span, "-")
	if !ok {
		return Press{}, fmt.Errorf("%w: %q is not a from-to span", ErrBadScript, span)
	}

	if p.At, err = parseTime(at); err != nil {
		return Press{}, err
	}

	if p.Release, err = parseTime(release); err != nil {
		return Press{}, err
	}

	return p, nil
}

func parseTime(s string) (sim.VTimeInCycle, error) {
	t, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: time %q", ErrBadScript, s)
	}

	return sim.VTimeInCycle(t), nil
}

// String formats a script in the command line form.
func (s Script) String() string {
	items := make([]string, 0, len(s))

	for _, p := range s {
		item := fmt.Sprintf("%s:%d-%d", p.Line, p.At, p.Release)
		if p.Bounces > 0 {
			item += fmt.Sprintf("~%d", p.Bounces)
		}

		items = append(items, item)
	}

	return strings.Join(items, ",")
}
