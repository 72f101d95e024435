package main

import "cnet-api/cmd"

func main() {
	cmd.Execute()
}
