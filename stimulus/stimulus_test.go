package stimulus

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/elkey/hw"
	"github.com/sarchlab/elkey/paddle"
	"github.com/sarchlab/elkey/sim"
)

var _ = Describe("Parse", func() {
	It("should parse presses", func() {
		s, err := Parse("dit:0-2000, dah:3000-9000~3")

		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(Script{
			{Line: paddle.DitLine, At: 0, Release: 2000,
				BounceGap: DefaultBounceGap},
			{Line: paddle.DahLine, At: 3000, Release: 9000, Bounces: 3,
				BounceGap: DefaultBounceGap},
		}))
	})

	It("should print what it parses", func() {
		s, err := Parse("dit:0-2000,dah:3000-9000~3")

		Expect(err).NotTo(HaveOccurred())
		Expect(s.String()).To(Equal("dit:0-2000,dah:3000-9000~3"))
	})

	It("should accept an empty script", func() {
		s, err := Parse("")

		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeEmpty())
	})

	DescribeTable("should reject malformed scripts",
		func(text string) {
			_, err := Parse(text)

			Expect(err).To(MatchError(ErrBadScript))
		},
		Entry("no span", "dit"),
		Entry("unknown paddle", "foot:0-10"),
		Entry("no release", "dit:100"),
		Entry("bad time", "dit:a-10"),
		Entry("bad bounce count", "dit:0-10~x"),
		Entry("release before press", "dah:100-50"),
		Entry("release inside the bounces", "dit:0-100~2"),
		Entry("overlapping presses", "dit:0-100,dit:50-200"),
	)

	It("should allow squeezes", func() {
		_, err := Parse("dit:0-100,dah:50-200")

		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("Press", func() {
	It("should expand bounces on both edges", func() {
		p := Press{
			Line:      paddle.DitLine,
			At:        1000,
			Release:   2000,
			Bounces:   1,
			BounceGap: 10,
		}

		Expect(p.Transitions()).To(Equal([]Transition{
			{Time: 1000, Line: paddle.DitLine, Level: true},
			{Time: 1010, Line: paddle.DitLine, Level: false},
			{Time: 1020, Line: paddle.DitLine, Level: true},
			{Time: 2000, Line: paddle.DitLine, Level: false},
			{Time: 2010, Line: paddle.DitLine, Level: true},
			{Time: 2020, Line: paddle.DitLine, Level: false},
		}))
	})

	It("should tell when the script ends", func() {
		s := Script{
			{Line: paddle.DitLine, At: 0, Release: 100},
			{Line: paddle.DahLine, At: 50, Release: 300, Bounces: 2,
				BounceGap: 5},
		}

		Expect(s.End()).To(Equal(sim.VTimeInCycle(320)))
	})
})

var _ = Describe("Driver", func() {
	var (
		engine   *sim.SerialEngine
		dit, dah *hw.SimInput
		driver   *Driver
		changes  []sim.VTimeInCycle
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		dit = hw.NewSimInput("dit")
		dah = hw.NewSimInput("dah")
		driver = NewDriver("Stimulus", engine, dit, dah)
		changes = nil

		dah.SetChangeHandler(func() {
			changes = append(changes, engine.CurrentTime())
		})
	})

	It("should play a script", func() {
		s, err := Parse("dah:100-500~1")
		Expect(err).NotTo(HaveOccurred())

		Expect(driver.Load(s)).To(Succeed())
		Expect(engine.Run()).To(Succeed())

		Expect(changes).To(Equal([]sim.VTimeInCycle{100, 140, 180, 500, 540, 580}))
		Expect(dah.Get()).To(BeFalse())
		Expect(driver.Applied()).To(Equal(uint64(6)))
	})

	It("should set a paddle now", func() {
		Expect(engine.RunUntil(70)).To(Succeed())

		driver.Set(paddle.DitLine, true)
		Expect(engine.Run()).To(Succeed())

		Expect(dit.Get()).To(BeTrue())
	})

	It("should refuse transitions in the past", func() {
		Expect(engine.RunUntil(70)).To(Succeed())

		err := driver.Load(Script{{Line: paddle.DitLine, At: 10, Release: 100}})

		Expect(err).To(MatchError(ErrBadScript))
		Expect(engine.Pending()).To(BeZero())
	})
})
