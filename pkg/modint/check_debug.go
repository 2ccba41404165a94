//go:build modint_debug

package modint

import "fmt"

func checkModulus(x, y Int) {
	if !x.m.Eq(y.m) {
		panic(fmt.Sprintf("modint: mixed moduli %s and %s", x.m, y.m))
	}
}
