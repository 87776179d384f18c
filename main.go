package main

import "github.com/xvierd/vcprompt/cmd"

func main() {
	cmd.Execute()
}
