package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/salespoint/orderadmin/config"
	"github.com/salespoint/orderadmin/internal/adminapi"
	"github.com/salespoint/orderadmin/internal/app"
	"github.com/salespoint/orderadmin/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "/etc/orderadmin.yml", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema, all data is lost")
)

var (
	BuildVersion = "dev"
	BuildTime    = ""
)

func printVersion() {
	fmt.Printf("orderadmin %s %s\n", BuildVersion, BuildTime)
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		printVersion()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database schema recreated")
		os.Exit(0)
	}

	webserver.Init(application)
	adminapi.InitRouter(application)

	errchan := make(chan error, 1)
	go func() {
		errchan <- webserver.Listen()
	}()

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errchan:
		zap.S().Errorf("admin server stopped: %v", err)
	case sig := <-sigchan:
		zap.S().Infof("received signal %s, shutting down", sig)
	}
}
