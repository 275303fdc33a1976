package handlers

import (
	"net/http"

	"github.com/playaway/gge-go/internal/httpx"
	"github.com/playaway/gge-go/internal/version"
)

func VersionHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, version.Get())
}
