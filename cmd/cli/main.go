package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/soulbloom/internal/client/cli"
	"github.com/dmitrijs2005/soulbloom/internal/client/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
