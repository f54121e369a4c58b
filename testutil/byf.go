package testutil

import (
	"fmt"

	. "github.com/onsi/ginkgo"
)

func Byf(format string, args ...interface{}) {
	By(fmt.Sprintf(format, args...))
	fmt.Fprintln(GinkgoWriter)
}
