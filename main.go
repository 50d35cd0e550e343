package main

import "clangdmcp/cmd"

func main() {
	cmd.Execute()
}
