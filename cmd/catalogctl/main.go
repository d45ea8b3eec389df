package main

import (
	"log"

	"github.com/trusteddatanow/catalog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("catalogctl: %v", err)
	}
}
