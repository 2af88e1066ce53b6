// Command shepherdctl runs membership and attendance checks directly
// against the Shepherd database.
package main

import (
	"os"

	"github.com/mmynk/shepherd/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
