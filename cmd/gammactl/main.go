// Command gammactl is the batch host for the gamma engine.
package main

import "github.com/korjavin/gammagame/cmd/gammactl/cmd"

func main() {
	cmd.Execute()
}
