package main

import "github.com/atikulmunna/hitcount/internal/cmd"

func main() {
	cmd.Execute()
}
