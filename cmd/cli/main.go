package main

import (
	"context"
	"log"
	"os"

	"github.com/cynit/hub/internal/buildinfo"
	"github.com/cynit/hub/internal/client/cli"
	"github.com/cynit/hub/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
