package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/diillson/fuellog-go/internal/adapter/driven/config"
	"github.com/diillson/fuellog-go/internal/adapter/driving/cli"
	"github.com/diillson/fuellog-go/pkg/console"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Inicializa o aplicativo CLI com os repositórios que não dependem da configuração
	app := cli.NewCLIApp(config.NewConfigRepository(), console.NewConsole())

	// Executa o aplicativo
	if err := app.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
