package main

import "github.com/chrisdamba/foodorder/cmd"

func main() {
	cmd.Execute()
}
