package main

import (
	"context"
	"flag"
	"os"

	"github.com/zsigidavid/notekeeper/internal/client/cli"
)

func main() {
	addr := flag.String("addr", "http://localhost:5000", "notekeeper server address")
	flag.Parse()

	app := cli.NewApp(*addr, os.Stdin, os.Stdout)
	app.Run(context.Background())
}
