package main

import (
	"log"

	"github.com/playaway/gge-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
