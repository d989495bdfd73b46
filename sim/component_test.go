package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ComponentBase", func() {
	var (
		component *ComponentBase
	)

	BeforeEach(func() {
		component = NewComponentBase("Keyer")
	})

	It("should set and get name", func() {
		Expect(component.Name()).To(Equal("Keyer"))
	})

	It("should invoke hooks in registration order", func() {
		var order []int
		pos := &HookPos{Name: "Tick"}

		component.AcceptHook(HookFunc(func(ctx HookCtx) {
			Expect(ctx.Pos).To(BeIdenticalTo(pos))
			order = append(order, 1)
		}))
		component.AcceptHook(HookFunc(func(HookCtx) {
			order = append(order, 2)
		}))

		component.InvokeHook(HookCtx{Domain: component, Pos: pos})

		Expect(component.NumHooks()).To(Equal(2))
		Expect(component.Hooks()).To(HaveLen(2))
		Expect(order).To(Equal([]int{1, 2}))
	})
})
