package main

import (
	cmd "github.com/kerbaras/fitguide/cmd/fitguide"
)

func main() {
	cmd.Execute()
}
