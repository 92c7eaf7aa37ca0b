package main

import "github.com/drakedevel/eagle-tools/cmd/eagle-tools/cmd"

func main() {
	cmd.Execute()
}
