package main

import "github.com/bkrawczyk/cv-coach/cmd"

func main() {
	cmd.Execute()
}
