package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/customer-grouper/cmd/batch"
	"fjacquet/customer-grouper/cmd/inspect"
	"fjacquet/customer-grouper/cmd/predict"
	"fjacquet/customer-grouper/cmd/root"
	"fjacquet/customer-grouper/cmd/serve"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Set the global logrus level before anything logs
	configureLogLevelDirectly()

	// 3. Initialize root command and add subcommands
	root.Init()
	root.Cmd.AddCommand(predict.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(inspect.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global logrus level from CGROUP_LOG_LEVEL
func configureLogLevelDirectly() {
	logLevel, err := logrus.ParseLevel(strings.ToLower(os.Getenv("CGROUP_LOG_LEVEL")))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
