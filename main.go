package main

import "hydroc/cmd"

func main() {
	cmd.Execute()
}
