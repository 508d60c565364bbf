package main

import "github.com/vayuview/vayuview/cmd"

func main() {
	cmd.Execute()
}
