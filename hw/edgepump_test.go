package hw

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeInterruptIn struct {
	level bool
	isr   func()
	err   error
}

func (f *fakeInterruptIn) Get() bool {
	return f.level
}

func (f *fakeInterruptIn) SetInterrupt(isr func()) error {
	f.isr = isr
	return f.err
}

func (f *fakeInterruptIn) toggle() {
	f.level = !f.level
	f.isr()
}

var _ = Describe("EdgePump", func() {
	var (
		pump     *EdgePump
		dit, dah *fakeInterruptIn
		ditCalls int
		dahCalls int
	)

	BeforeEach(func() {
		pump = NewEdgePump()
		dit = &fakeInterruptIn{}
		dah = &fakeInterruptIn{}
		ditCalls, dahCalls = 0, 0

		pump.Input(dit).SetChangeHandler(func() { ditCalls++ })
		pump.Input(dah).SetChangeHandler(func() { dahCalls++ })
	})

	It("should not run handlers from the interrupt", func() {
		dit.toggle()

		Expect(ditCalls).To(BeZero())
		Expect(pump.Pending()).To(BeTrue())
	})

	It("should run the handler of the changed input on service", func() {
		dah.toggle()

		pump.Service()

		Expect(dahCalls).To(Equal(1))
		Expect(ditCalls).To(BeZero())
		Expect(pump.Pending()).To(BeFalse())
	})

	It("should merge interrupts between services", func() {
		dit.toggle()
		dit.toggle()
		dit.toggle()

		pump.Service()
		pump.Service()

		Expect(ditCalls).To(Equal(1))
	})

	It("should read the level through the wrapper", func() {
		in := pump.Input(dit)

		dit.toggle()

		Expect(in.Get()).To(BeTrue())
	})

	It("should panic if the interrupt cannot be set", func() {
		bad := &fakeInterruptIn{err: errors.New("no such interrupt")}

		Expect(func() {
			pump.Input(bad).SetChangeHandler(func() {})
		}).To(Panic())
	})
})
