package main

import (
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/tensorworks/dxgi-probe/internal/discovery"
	"github.com/tensorworks/dxgi-probe/internal/report"
)

func main() {

	// Parse our command-line arguments
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	strategyName := flag.String("primary-strategy", "auto", "primary display detection (auto, monitor, descriptor)")
	flag.Parse()

	strategy, err := discovery.ParsePrimaryStrategy(*strategyName)
	if err != nil {
		log.Fatalln("Error:", err)
	}

	// Enable verbose logging for the enumerator if it has been requested
	logger := zap.NewNop()
	if *verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			log.Fatalln("Error:", err)
		}
	}
	defer logger.Sync()

	// Create a new Enumerator object
	enumerator, err := discovery.NewEnumerator(
		discovery.DefaultPlatform(),
		discovery.WithLogger(logger.Sugar()),
		discovery.WithPrimaryStrategy(strategy),
	)
	if err != nil {
		log.Fatalln("Error:", err)
	}

	// Perform output enumeration
	outputs, err := enumerator.Enumerate()
	if err != nil {
		log.Fatalln("Error:", err)
	}

	// Print the primary detection strategy and the number of discovered outputs
	summary := report.Summarize(outputs)
	fmt.Print("Primary display detection strategy: ", enumerator.Strategy(), "\n")
	fmt.Print("Discovered ", summary.Outputs, " outputs across ", summary.Adapters, " adapters.\n\n")

	// Print the details for each adapter and its outputs
	for _, adapterIndex := range summary.AdapterIndices() {
		fmt.Print("[Adapter ", adapterIndex, " outputs]\n\n")
		for _, output := range outputs {
			if output.AdapterIndex != adapterIndex {
				continue
			}

			fmt.Println("Output Index:  ", output.OutputIndex)
			fmt.Println("Device Name:   ", output.DeviceName)
			fmt.Println("Resolution:    ", fmt.Sprintf("%dx%d", output.Width, output.Height))
			fmt.Println("Is Primary:    ", output.Primary)
			fmt.Print("\n")
		}
	}
}
