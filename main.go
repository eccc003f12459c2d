package main

import "github.com/meki101/mekitech.co.ke/cmd"

func main() {
	cmd.Execute()
}
