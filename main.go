package main

import "github.com/iksnae/question-digest/cmd"

func main() {
	cmd.Execute()
}
