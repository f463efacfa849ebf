package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// DriveAuth is a small helper server for minting a Google Drive
// refresh token interactively. It runs next to the API only when Drive
// storage is configured with an OAuth client secret; regular uploads
// authenticate with the service-account credentials file.
type DriveAuth struct {
	oauth  *oauth2.Config
	logger Logger
	server *http.Server
}

func NewDriveAuth(log Logger, clientSecretPath string) (*DriveAuth, error) {
	raw, err := os.ReadFile(clientSecretPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth client secret: %w", err)
	}

	cfg, err := google.ConfigFromJSON(raw, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse oauth client secret: %w", err)
	}

	return &DriveAuth{oauth: cfg, logger: log}, nil
}

// Handler exposes the consent redirect and the token callback.
func (d *DriveAuth) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/google/drive", d.handleConsent)
	mux.HandleFunc("GET /auth/google/callback", d.handleCallback)
	return mux
}

func (d *DriveAuth) handleConsent(w http.ResponseWriter, r *http.Request) {
	url := d.oauth.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (d *DriveAuth) handleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing code parameter", http.StatusBadRequest)
		return
	}

	token, err := d.oauth.Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, fmt.Sprintf("token exchange failed: %v", err), http.StatusInternalServerError)
		return
	}

	if token.RefreshToken == "" {
		fmt.Fprintln(w, "No refresh token returned. Revoke the app's access and authorize again.")
		return
	}

	tokenJSON, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		http.Error(w, "failed to marshal token", http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "Refresh token:\n%s\n\nFull token:\n%s\n", token.RefreshToken, tokenJSON)
}

// Start serves the helper endpoints in the background until Shutdown.
func (d *DriveAuth) Start(addr string) {
	d.server = &http.Server{
		Addr:              addr,
		Handler:           d.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		d.logger.Infof("Drive OAuth helper listening on %s", addr)
		if err := d.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			d.logger.Errorf("Drive OAuth helper: %v", err)
		}
	}()
}

func (d *DriveAuth) Shutdown(ctx context.Context) error {
	if d.server == nil {
		return nil
	}
	if err := d.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown oauth helper: %w", err)
	}
	return nil
}
