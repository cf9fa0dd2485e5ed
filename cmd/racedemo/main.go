// Command racedemo plays, simulates, and renders the track racing demo.
package main

import "github.com/cxd309/race-engine/internal/cli"

func main() {
	cli.Execute()
}
