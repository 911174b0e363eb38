package main

import "github.com/averaldo/permissions-app/cmd"

func main() {
	cmd.Execute()
}
