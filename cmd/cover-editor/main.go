package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mlafefon/Ihulan-cover-sub001/internal/server"
)

// Set by ldflags at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usage = `cover-editor speaks JSON-RPC 2.0 over stdin/stdout. A host opens an
edit session per cover image, drives pan/zoom, tone filters and color
replacement, then confirms with editor/export or abandons with
editor/close. Call editor/describe for the full method catalog.

  cover-editor             run the bridge until stdin closes
  cover-editor version     print build information

Set COVER_EDITOR_LOG_LEVEL=debug for verbose logging on stderr.
`

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("cover-editor %s (commit %s, built %s)\n", Version, GitCommit, BuildTime)
			return
		case "--help", "-h", "help":
			fmt.Print(usage)
			return
		}
	}

	// stdout carries the protocol; all logging goes to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if os.Getenv("COVER_EDITOR_LOG_LEVEL") == "debug" {
		log.Printf("cover-editor %s starting (commit %s)", Version, GitCommit)
	}

	if err := server.New().Run(); err != nil {
		log.Fatalf("bridge terminated: %v", err)
	}
}
