package paddle

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/elkey/hw"
	"github.com/sarchlab/elkey/sim"
)

type levelEvent struct {
	*sim.EventBase

	level bool
}

type lineDriver struct {
	line *hw.SimInput
}

func (d *lineDriver) Handle(e sim.Event) error {
	d.line.Drive(e.(*levelEvent).level)
	return nil
}

var _ = Describe("Sampler", func() {
	var (
		engine   *sim.SerialEngine
		dit, dah *hw.SimInput
		seen     []PaddleState
	)

	driveAt := func(in *hw.SimInput, t sim.VTimeInCycle, level bool) {
		d := &lineDriver{line: in}
		engine.Schedule(&levelEvent{
			EventBase: sim.NewEventBase(t, d),
			level:     level,
		})
	}

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		dit = hw.NewSimInput("dit")
		dah = hw.NewSimInput("dah")
		seen = nil
	})

	Context("without debouncing", func() {
		var s *Sampler

		BeforeEach(func() {
			s = MakeBuilder().
				WithEngine(engine).
				WithoutDebounce().
				Build("Sampler", dit, dah)
			s.AddListener(func(p PaddleState) { seen = append(seen, p) })
		})

		It("should report that it does not debounce", func() {
			Expect(s.Debouncing()).To(BeFalse())
		})

		It("should read the instantaneous level", func() {
			dit.Drive(true)

			Expect(s.Read()).To(Equal(PaddleState{Dit: true}))
			Expect(seen).To(Equal([]PaddleState{{Dit: true}}))
		})

		It("should report a squeeze", func() {
			dit.Drive(true)
			dah.Drive(true)

			Expect(s.Read().Both()).To(BeTrue())
			Expect(seen).To(HaveLen(2))
		})
	})

	Context("with debouncing", func() {
		var s *Sampler

		BeforeEach(func() {
			s = MakeBuilder().
				WithEngine(engine).
				WithDebounce(400).
				Build("Sampler", dit, dah)
			s.AddListener(func(p PaddleState) { seen = append(seen, p) })
		})

		It("should report that it debounces", func() {
			Expect(s.Debouncing()).To(BeTrue())
		})

		It("should not trust a new level before it settles", func() {
			driveAt(dit, 100, true)

			Expect(engine.RunUntil(499)).To(Succeed())
			Expect(s.Read().None()).To(BeTrue())
			Expect(seen).To(BeEmpty())

			Expect(engine.RunUntil(500)).To(Succeed())
			Expect(s.Read()).To(Equal(PaddleState{Dit: true}))
			Expect(seen).To(Equal([]PaddleState{{Dit: true}}))
		})

		It("should absorb contact bounce", func() {
			driveAt(dah, 100, true)
			driveAt(dah, 110, false)
			driveAt(dah, 120, true)
			driveAt(dah, 130, false)
			driveAt(dah, 140, true)

			Expect(engine.Run()).To(Succeed())

			Expect(s.Read()).To(Equal(PaddleState{Dah: true}))
			Expect(seen).To(Equal([]PaddleState{{Dah: true}}))
		})

		It("should ignore a glitch that is gone after the settle delay", func() {
			driveAt(dit, 100, true)
			driveAt(dit, 150, false)

			Expect(engine.Run()).To(Succeed())

			Expect(s.Read().None()).To(BeTrue())
			Expect(seen).To(BeEmpty())
		})

		It("should settle each line on its own", func() {
			driveAt(dit, 100, true)
			driveAt(dah, 300, true)

			Expect(engine.RunUntil(500)).To(Succeed())
			Expect(s.Read()).To(Equal(PaddleState{Dit: true}))

			Expect(engine.RunUntil(700)).To(Succeed())
			Expect(s.Read()).To(Equal(PaddleState{Dit: true, Dah: true}))
		})
	})
})

var _ = Describe("PaddleState", func() {
	It("should describe itself", func() {
		Expect(PaddleState{}.String()).To(Equal("none"))
		Expect(PaddleState{Dit: true}.String()).To(Equal("dit"))
		Expect(PaddleState{Dah: true}.String()).To(Equal("dah"))
		Expect(PaddleState{Dit: true, Dah: true}.String()).To(Equal("squeeze"))
	})

	It("should parse line names", func() {
		l, err := ParseLine("dah")
		Expect(err).NotTo(HaveOccurred())
		Expect(l).To(Equal(DahLine))

		_, err = ParseLine("straight")
		Expect(err).To(HaveOccurred())
	})
})
