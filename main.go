package main

import "github.com/kozaktomas/photo-atlas/cmd"

func main() {
	cmd.Execute()
}
