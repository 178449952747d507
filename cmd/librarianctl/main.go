// Command librarianctl runs administrative tasks against the configured store.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(&app{out: os.Stdout}).Execute(); err != nil {
		os.Exit(1)
	}
}
