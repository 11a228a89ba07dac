package main

import (
	"fmt"
	"os"

	"github.com/smartcontractkit/inkabi/cmd/inkabi"
)

func main() {
	rootCmd := inkabi.BuildInkAbiCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
