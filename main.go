package main

import (
	"flag"
	"log"

	"github.com/modelproof/modelproof-backend/cmd"
)

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run schema migrations")
	shouldRunWorker := flag.Bool("worker", false, "Run the background job worker")
	flag.Parse()

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(); err != nil {
			log.Fatal(err)
		}
	}
	if *shouldRunWorker || !*shouldRunMigrations {
		if err := cmd.RunWorker(); err != nil {
			log.Fatal(err)
		}
	}
}
