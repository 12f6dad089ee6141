package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Se9uencer/FitCheck/api"
	"github.com/Se9uencer/FitCheck/config"
	"github.com/Se9uencer/FitCheck/scraper"
	"github.com/Se9uencer/FitCheck/utils"
)

func main() {
	config.LoadConfig()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	opts := scraper.DefaultOptions()
	opts.BrowserFallback = config.BrowserFallback
	amazon := scraper.New(log, opts)
	log.Info("Amazon scraper initialized")

	handler := api.NewHandler(amazon, log)

	log.Infof("FitCheck API starting on port %s", config.Port)
	if err := http.ListenAndServe(":"+config.Port, handler.Routes()); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
