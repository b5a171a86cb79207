package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/clinic/internal/adminctl"
	"github.com/dmitrijs2005/clinic/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadEnvConfig()

	app := adminctl.NewApp(os.Stdin, os.Stdout, cfg)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "clinicctl:", err)
		os.Exit(1)
	}
}
