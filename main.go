package main

import "pak-index/cmd"

func main() {
	cmd.Execute()
}
