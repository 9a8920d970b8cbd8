package main

import "github.com/khanhnv2901/seca-probe/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
