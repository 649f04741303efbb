/*

gacdecode converts a raw memory snapshot into the portable JSON database
the interpreter consumes.

*/
package main

import (
	"fmt"
	"os"

	"github.com/gac-toolkit/gac/gacdecoder"
)

const (
	appName    = "gacdecode"
	appVersion = "v1.0.0"
)

const (
	ExitCodeMissingArguments    = 1
	ExitCodeFailedToDecode      = 2
	ExitCodeFailedToEncode      = 3
	ExitCodeFailedToWriteOutput = 4
)

func main() {
	if len(os.Args) == 2 && (os.Args[1] == "-version" || os.Args[1] == "--version") {
		fmt.Println(appName, "version:", appVersion)
		return
	}

	if len(os.Args) != 3 {
		printUsage()
		os.Exit(ExitCodeMissingArguments)
	}

	inFile, outFile := os.Args[1], os.Args[2]

	db, err := gacdecoder.DecodeFile(inFile)
	if err != nil {
		fmt.Printf("Failed to decode snapshot: %v\n", err)
		os.Exit(ExitCodeFailedToDecode)
	}

	data, err := db.Encode()
	if err != nil {
		fmt.Printf("Failed to encode database: %v\n", err)
		os.Exit(ExitCodeFailedToEncode)
	}

	if err := os.WriteFile(outFile, data, 0o644); err != nil {
		fmt.Printf("Failed to write output file: %v\n", err)
		os.Exit(ExitCodeFailedToWriteOutput)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Printf("\t%s INPUT_FILE OUTPUT_FILE\n", os.Args[0])
	fmt.Println("\tINPUT_FILE is a raw memory snapshot; OUTPUT_FILE receives the decoded JSON database.")
}
