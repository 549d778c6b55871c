package main

import "github.com/naka-gawa/readme-activity/cmd"

func main() {
	cmd.Execute()
}
