package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/osseo/version"
)

var rootCmd = &cobra.Command{
	Use:   "osseo",
	Short: "Implant placement deviation and overlap analysis",
	Long: `osseo compares planned implant trajectories against achieved ones.
For each implant pair it reports the linear deviation at base and apex,
the angular deviation between the axes, and the overlap volume computed
by boolean mesh intersection of the two solids.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
