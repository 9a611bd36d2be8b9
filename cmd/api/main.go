package main

import (
	"flag"
	"log"

	"meanrevert/cmd"
	"meanrevert/internal/logger"
)

func main() {
	port := flag.Int("port", 3009, "port to serve on")
	flag.Parse()

	deps, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	logger.New().Infow("starting api", "port", *port, "provider", deps.Secrets.Provider)
	if err := deps.ApiHandler.StartApi(*port); err != nil {
		log.Fatal(err)
	}
}
