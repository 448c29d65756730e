package main

import (
	"fmt"

	"github.com/znbflyingant/updateDeviceConfig/internal/config"
	myHTTP "github.com/znbflyingant/updateDeviceConfig/internal/handler/http"
	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/internal/server"
	"github.com/znbflyingant/updateDeviceConfig/internal/service"
	"github.com/znbflyingant/updateDeviceConfig/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("firmware-console-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	services := service.NewServices(cfg, log)
	records := store.New(cfg.OSS.CDNDomain)
	handler := myHTTP.NewHandler(services, records, cfg, log)

	server.NewServer(handler.Init(), cfg.Server, log).RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
