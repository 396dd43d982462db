package decompose_test

import (
	"github.com/san-kum/fieldviz/internal/decompose"
	"github.com/san-kum/fieldviz/internal/expr"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func evalAt(coef string, x, y float64) float64 {
	p, err := expr.Compile(coef)
	Expect(err).NotTo(HaveOccurred())
	v, err := p.Evaluate(expr.Scope{"x": x, "y": y, "z": 0, "t": 0})
	Expect(err).NotTo(HaveOccurred())
	return v
}

var _ = Describe("Decompose", func() {
	Context("with the rotation field i*(-y) + j*x", func() {
		var comps decompose.Components

		BeforeEach(func() {
			var err error
			comps, err = decompose.Decompose("i*(-y) + j*x")
			Expect(err).NotTo(HaveOccurred())
		})

		It("leaves the z slot neutral", func() {
			Expect(comps.Z).To(Equal(decompose.Zero))
		})

		It("yields (-y, x) at every point", func() {
			Expect(evalAt(comps.X, 3, 5)).To(BeNumerically("==", -5))
			Expect(evalAt(comps.Y, 3, 5)).To(BeNumerically("==", 3))
		})

		It("is deterministic", func() {
			again, err := decompose.Decompose("i*(-y) + j*x")
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(comps))
		})
	})

	DescribeTable("coefficients agree with the written field",
		func(src string, x, y, wantX, wantY float64) {
			comps, err := decompose.Decompose(src)
			Expect(err).NotTo(HaveOccurred())
			Expect(evalAt(comps.X, x, y)).To(BeNumerically("~", wantX, 1e-12))
			Expect(evalAt(comps.Y, x, y)).To(BeNumerically("~", wantY, 1e-12))
		},
		Entry("vortex", "(i*(-y) + j*x)/(x^2+y^2)", 1.0, 2.0, -0.4, 0.2),
		Entry("scaled sum", "2*(i*x + j*y)", 1.5, -1.0, 3.0, -2.0),
		Entry("implicit product", "2i - 3j", 0.0, 0.0, 2.0, -3.0),
		Entry("negated group", "-(i*y - j*x)/2", 4.0, 6.0, -3.0, 2.0),
		Entry("function coefficients", "i*sin(x) + cos(y)*j", 0.0, 0.0, 0.0, 1.0),
		Entry("subtracted quotient", "j - (i*x + j*y)/(x+y)", 1.0, 3.0, -0.25, 0.25),
	)

	It("never lets a coefficient contain its own axis symbol", func() {
		comps, err := decompose.Decompose("i*x*sin(y) + (i + j)/(1 + x^2) - k*z")
		Expect(err).NotTo(HaveOccurred())
		for _, a := range decompose.Axes {
			toks, err := expr.Tokenize(comps.Get(a))
			Expect(err).NotTo(HaveOccurred())
			for _, tok := range toks {
				Expect(tok.Kind == expr.Axis && tok.Text == a.Symbol()).To(BeFalse())
			}
		}
	})

	It("fails atomically on a malformed term", func() {
		comps, err := decompose.Decompose("i*x + j*log(k)")
		Expect(err).To(MatchError(decompose.ErrAxisInCall))
		Expect(comps).To(Equal(decompose.Components{}))
	})
})
