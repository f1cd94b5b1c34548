package main

import "github.com/JakeFAU/areapages/cmd"

func main() {
	cmd.Execute()
}
