package main

import "poseclient/cmd"

func main() {
	cmd.Execute()
}
