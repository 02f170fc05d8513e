package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Built     string `json:"built"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func currentVersion() versionInfo {
	return versionInfo{
		Version:   version,
		Commit:    commit,
		Built:     date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func versionCmd() *cobra.Command {
	var (
		short  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version, commit, and build information for the viewtree CLI.`,
		// Version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentVersion()
			switch {
			case short:
				fmt.Println(info.Version)
			case asJSON:
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			default:
				fmt.Print(banner)
				fmt.Println()
				fmt.Printf("  Version:    %s\n", info.Version)
				fmt.Printf("  Commit:     %s\n", info.Commit)
				fmt.Printf("  Built:      %s\n", info.Built)
				fmt.Printf("  Go version: %s\n", info.GoVersion)
				fmt.Printf("  OS/Arch:    %s\n", info.Platform)
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON")

	return cmd
}
