package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/usi-samples/usi-client-go/config"
	"github.com/usi-samples/usi-client-go/types"
)

func buildStatus() types.StatusInfo {
	options := config.GetConfig().Options

	return types.StatusInfo{
		Software: options.GetString(config.Keys.SoftwareName),
		Commit:   options.GetString(config.Keys.BuildCommit),
	}
}

// Status responds back with the software name and build commit
func Status(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(buildStatus())
	})
}
