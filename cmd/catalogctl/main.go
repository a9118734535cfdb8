package main

import "os"

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}
