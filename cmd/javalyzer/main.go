package main

import (
	"errors"
	"os"
)

func main() {
	err := Execute()
	if err != nil {
		var uErr *usageError
		if errors.As(err, &uErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
