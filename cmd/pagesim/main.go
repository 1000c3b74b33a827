// Command pagesim compares page replacement policies on a stream of virtual
// addresses.
package main

import "github.com/sarchlab/pagesim/cmd/pagesim/cmd"

func main() {
	cmd.Execute()
}
