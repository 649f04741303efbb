/*

gacrun loads a decoded database and plays it interactively on the
console.

*/
package main

import (
	"fmt"
	"os"

	"github.com/gac-toolkit/gac/gacdb"
	"github.com/gac-toolkit/gac/gacio"
	"github.com/gac-toolkit/gac/gacvm"
)

const (
	appName    = "gacrun"
	appVersion = "v1.0.0"
)

const (
	ExitCodeMissingArguments = 1
	ExitCodeFailedToReadFile = 2
	ExitCodeFailedToDecode   = 3
	ExitCodeBadDatabase      = 4
)

func main() {
	if len(os.Args) == 2 && (os.Args[1] == "-version" || os.Args[1] == "--version") {
		fmt.Println(appName, "version:", appVersion)
		return
	}

	if len(os.Args) != 2 {
		printUsage()
		os.Exit(ExitCodeMissingArguments)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Failed to read database file: %v\n", err)
		os.Exit(ExitCodeFailedToReadFile)
	}

	db, err := gacdb.Decode(data)
	if err != nil {
		fmt.Printf("Failed to decode database: %v\n", err)
		os.Exit(ExitCodeFailedToDecode)
	}

	io := gacio.NewConsole(os.Stdout, os.Stdin)
	m := gacvm.NewMachine(db, io, nil)

	driver, err := gacvm.NewDriver(m)
	if err != nil {
		fmt.Printf("Failed to start adventure: %v\n", err)
		os.Exit(ExitCodeBadDatabase)
	}

	driver.RunAdventure()
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Printf("\t%s INPUT_FILE\n", os.Args[0])
	fmt.Println("\tINPUT_FILE is a decoded JSON database produced by gacdecode.")
}
