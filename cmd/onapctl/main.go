// onapctl drives the SDK end-to-end from the command line: onboarding
// of service models into SDC, distribution, a'la carte instantiation
// through SO and CLAMP control loop deployment.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
