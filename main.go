package main

import "event-archiver/cmd"

func main() {
	cmd.Execute()
}
