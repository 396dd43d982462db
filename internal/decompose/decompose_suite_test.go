package decompose_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDecomposeSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Decompose Suite")
}
