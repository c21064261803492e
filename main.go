package main

import "stature/cmd"

// @title stature API
// @version 1.0
// @description Photographic height estimation relay.
func main() {
	cmd.Execute()
}
