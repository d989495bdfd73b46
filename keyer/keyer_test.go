package keyer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/elkey/paddle"
)

var (
	released = paddle.PaddleState{}
	ditOnly  = paddle.PaddleState{Dit: true}
	dahOnly  = paddle.PaddleState{Dah: true}
	squeeze  = paddle.PaddleState{Dit: true, Dah: true}
)

func run(m *Machine, p paddle.PaddleState, n int) []bool {
	trace := make([]bool, n)
	for i := range trace {
		trace[i] = m.Tick(p)
	}

	return trace
}

// elementsSelected ticks the machine and records the element each time a new
// one is selected.
func elementsSelected(m *Machine, p paddle.PaddleState, n int) []Element {
	var selected []Element
	for i := 0; i < n; i++ {
		ready := m.Snapshot().Ready
		m.Tick(p)
		if ready {
			selected = append(selected, m.Snapshot().Element)
		}
	}

	return selected
}

var _ = Describe("Machine", func() {
	var m *Machine

	BeforeEach(func() {
		m = NewMachine(DefaultDahTicks)
	})

	It("should start idle", func() {
		Expect(m.Snapshot()).To(Equal(IdleState))
	})

	It("should keep the key up without paddles", func() {
		Expect(run(m, released, 4)).To(Equal([]bool{false, false, false, false}))
		Expect(m.Snapshot()).To(Equal(IdleState))
	})

	It("should send a square wave while the dit paddle is held", func() {
		trace := run(m, ditOnly, 100)

		for i, keyed := range trace {
			Expect(keyed).To(Equal(i%2 == 0), "tick %d", i)
		}
	})

	It("should be ready only when a dit leaves the key up", func() {
		m.Tick(ditOnly)
		Expect(m.Snapshot()).To(Equal(State{Element: Dit, Keyed: true}))

		m.Tick(ditOnly)
		Expect(m.Snapshot()).To(Equal(State{Element: Dit, Ready: true}))
	})

	It("should hold a dah for three ticks and release it for one", func() {
		trace := run(m, dahOnly, 12)

		Expect(trace).To(Equal([]bool{
			true, true, true, false,
			true, true, true, false,
			true, true, true, false,
		}))
	})

	It("should count dah ticks and block new selections during the hold",
		func() {
			m.Tick(dahOnly)
			Expect(m.Snapshot()).To(Equal(
				State{Element: Dah, DahCounter: 1, Keyed: true}))

			m.Tick(dahOnly)
			m.Tick(dahOnly)
			Expect(m.Snapshot()).To(Equal(
				State{Element: Dah, DahCounter: 3, Keyed: true}))

			m.Tick(dahOnly)
			Expect(m.Snapshot()).To(Equal(
				State{Element: Dah, DahCounter: 0, Ready: true}))
		})

	It("should honor a configured dah length", func() {
		m = NewMachine(4)

		Expect(run(m, dahOnly, 5)).To(Equal(
			[]bool{true, true, true, true, false}))
		Expect(m.DahTicks()).To(Equal(uint8(4)))
	})

	It("should alternate dit and dah while squeezed", func() {
		trace := run(m, squeeze, 12)

		Expect(trace).To(Equal([]bool{
			true, false,
			true, true, true, false,
			true, false,
			true, true, true, false,
		}))
	})

	It("should never select the same element twice in a squeeze", func() {
		selected := elementsSelected(m, squeeze, 60)

		Expect(selected[0]).To(Equal(Dit))
		for i := 1; i < len(selected); i++ {
			Expect(selected[i]).NotTo(Equal(selected[i-1]))
		}
	})

	It("should start a squeeze with a dit after a dah", func() {
		run(m, dahOnly, 4)

		Expect(m.Tick(squeeze)).To(BeTrue())
		Expect(m.Snapshot().Element).To(Equal(Dit))
	})

	It("should not interrupt a dah when the paddles change", func() {
		m.Tick(dahOnly)

		trace := run(m, ditOnly, 4)

		Expect(trace).To(Equal([]bool{true, true, false, true}))
		Expect(m.Snapshot().Element).To(Equal(Dit))
	})

	It("should finish a dit before switching to dah", func() {
		m.Tick(ditOnly)

		Expect(m.Tick(dahOnly)).To(BeFalse())
		Expect(m.Snapshot().Element).To(Equal(Dit))

		Expect(m.Tick(dahOnly)).To(BeTrue())
		Expect(m.Snapshot().Element).To(Equal(Dah))
	})

	It("should reset in the middle of a dah", func() {
		run(m, dahOnly, 2)

		Expect(m.Reset()).To(BeTrue())
		Expect(m.Snapshot()).To(Equal(IdleState))
	})

	It("should do nothing when reset twice", func() {
		run(m, ditOnly, 3)

		Expect(m.Reset()).To(BeTrue())
		Expect(m.Reset()).To(BeFalse())
		Expect(m.Snapshot()).To(Equal(IdleState))
	})

	It("should key up on release regardless of the tick parity", func() {
		trace := run(m, ditOnly, 5)
		Expect(trace).To(Equal([]bool{true, false, true, false, true}))

		m.Reset()

		Expect(m.Snapshot().Keyed).To(BeFalse())
	})

	It("should refuse a zero dah length", func() {
		Expect(func() { NewMachine(0) }).To(Panic())
	})

	It("should name its elements", func() {
		Expect(None.String()).To(Equal("None"))
		Expect(Dit.String()).To(Equal("Dit"))
		Expect(Dah.String()).To(Equal("Dah"))
	})
})
