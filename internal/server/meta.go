package server

import (
	"encoding/json"
	"net/http"

	"github.com/playaway/gge-go/internal/httpx"
	"github.com/playaway/gge-go/internal/identity"
	"github.com/playaway/gge-go/internal/version"
)

// metaResp is the platform discovery document clients fetch before
// talking to the API.
type metaResp struct {
	RegisterEndpoint string   `json:"register_endpoint"`
	LoginEndpoint    string   `json:"login_endpoint"`
	ClubsEndpoint    string   `json:"clubs_endpoint"`
	EventsEndpoint   string   `json:"events_endpoint"`
	RolesSupported   []string `json:"roles_supported"`
	Version          string   `json:"version"`
}

// MetaHandler returns the discovery document with absolute URLs built
// from the inbound request.
func MetaHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		base := httpx.BaseURL(req)

		response := &metaResp{
			RegisterEndpoint: base + "/auth/register",
			LoginEndpoint:    base + "/auth/login",
			ClubsEndpoint:    base + "/api/clubs",
			EventsEndpoint:   base + "/api/events",
			RolesSupported: []string{
				string(identity.RoleSuperAdmin),
				string(identity.RoleClubAdmin),
				string(identity.RoleGuestAdmin),
				string(identity.RoleYouthOfficer),
				string(identity.RoleUser),
			},
			Version: version.Version,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}
