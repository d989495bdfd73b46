package cmd

import (
	"bytes"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/elkey/config"
	"github.com/sarchlab/elkey/stimulus"
)

var _ = Describe("run", func() {
	var (
		cfg config.Config
		out *bytes.Buffer
	)

	BeforeEach(func() {
		cfg = config.Default()
		cfg.SpeedControlEnabled = false
		cfg.SidetoneEnabled = false
		out = new(bytes.Buffer)
	})

	It("should print the key line of a dit", func() {
		script, err := stimulus.Parse("dit:0-2000")
		Expect(err).ToNot(HaveOccurred())

		err = simulate(out, cfg, runOptions{script: script, reading: 40})

		Expect(err).ToNot(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("DOWN"))
		Expect(out.String()).To(ContainSubstring("sleeps"))
	})

	It("should stop at the requested time without power down", func() {
		cfg.PowerDownEnabled = false
		script, _ := stimulus.Parse("dah:0-9000")

		err := simulate(out, cfg, runOptions{
			script:  script,
			reading: 40,
			until:   20000,
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("sleeps 0"))
	})

	It("should write the trace to a CSV file", func() {
		script, _ := stimulus.Parse("dit:0-2000")
		path := filepath.Join(GinkgoT().TempDir(), "trace")

		err := simulate(out, cfg, runOptions{
			script:  script,
			reading: 40,
			csv:     path,
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(path + ".csv").To(BeAnExistingFile())
	})
})

var _ = Describe("closestReading", func() {
	It("should round to the nearest reading", func() {
		Expect(closestReading(1600, 40)).To(Equal(uint64(40)))
		Expect(closestReading(1619, 40)).To(Equal(uint64(40)))
		Expect(closestReading(1620, 40)).To(Equal(uint64(41)))
	})

	It("should saturate", func() {
		Expect(closestReading(40000, 40)).To(Equal(uint64(255)))
	})
})
