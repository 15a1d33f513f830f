package main

import "github.com/hemanthp-txst/profile-stats/cmd"

func main() {
	cmd.Execute()
}
