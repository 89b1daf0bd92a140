package main

import "github.com/quocvuong92/askweb/cmd"

func main() {
	cmd.Execute()
}
