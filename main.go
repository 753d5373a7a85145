package main

import "github.com/jb361/sudoku-solver/cmd"

func main() {
	cmd.Execute()
}
