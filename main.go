package main

import "github.com/josephlewis42/fakedevice/cmd"

func main() {
	cmd.Execute()
}
