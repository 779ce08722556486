// Package main provides the hsdb CLI application.
// hsdb manages the lifecycle of the HoopSync PostgreSQL database.
package main

import (
	"github.com/hoopsync/hsdb/cmd"
)

func main() {
	cmd.Execute()
}
