package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker <chart <request.json> | digest | migrate>")
	}

	var err error
	switch os.Args[1] {
	case "chart":
		err = RunChart(os.Args[2:], os.Stdout)
	case "digest":
		err = RunDigest()
	case "migrate":
		err = RunMigrate()
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}
