package main

import (
	"log"
	"os"
)

const usage = `usage:
  worker salvage <replyFile>             extract and validate a spec from a saved model reply
  worker summarize <original> <enhanced> diff two spec JSON files
  worker plan <prompt> [imageFile]       run plan+build against the configured model`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	var err error
	switch os.Args[1] {
	case "salvage":
		err = runSalvage(os.Args[2:], os.Stdout)
	case "summarize":
		err = runSummarize(os.Args[2:], os.Stdout)
	case "plan":
		err = runPlan(os.Args[2:], os.Stdout)
	default:
		log.Fatalf("unknown command: %s\n%s", os.Args[1], usage)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}
