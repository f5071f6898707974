package main

import "github.com/chrisdamba/fooddash/cmd"

func main() {
	cmd.Execute()
}
