package server

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/usi-samples/usi-client-go/config"
	"github.com/usi-samples/usi-client-go/controllers"
	"github.com/usi-samples/usi-client-go/logger"
)

// Launch serves the gateway until the listener fails.
func Launch(api *controllers.UsiApi) error {
	r := DoRoutes(api)
	var port = config.GetConfig().Options.GetString(config.Keys.Port)
	logger.Log.WithFields(logrus.Fields{"port": port}).Info("server starting")
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), r)
	logger.Log.WithFields(logrus.Fields{"error": err}).Error("server stopped")
	return err
}
