package cli

import (
	"fmt"

	"github.com/diillson/fuellog-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
         _____ _   _ _____ _     _     ___   ____
        |  ___| | | | ____| |   | |   / _ \ / ___|
        | |_  | | | |  _| | |   | |  | | | | |  _
        |  _| | |_| | |___| |___| |__| |_| | |_| |
        |_|    \___/|_____|_____|_____\___/ \____|
        `
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(yellow(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Fuel & charging analytics CLI (v%s)", formattedVersion)))
}
