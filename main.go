package main

import "github.com/placeatlas/ops-portal/cmd"

func main() {
	cmd.Execute()
}
