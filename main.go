package main

import "github.com/StevenPG/scribe/cmd"

func main() {
	cmd.Execute()
}
