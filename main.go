package main

import "github.com/naka-gawa/ktrawler/cmd"

func main() {
	cmd.Execute()
}
