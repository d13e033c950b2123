package main

import "github.com/mfauzanap/event-registration/cmd"

func main() {
	cmd.Execute()
}
