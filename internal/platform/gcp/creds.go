package gcp

import (
	"os"
	"strings"

	"google.golang.org/api/option"
)

// credentialOptions turns an inline service-account JSON or a key file path
// into client options. Empty falls back to GOOGLE_APPLICATION_CREDENTIALS_JSON
// and then to application default credentials.
func credentialOptions(creds string) []option.ClientOption {
	creds = strings.TrimSpace(creds)
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	}
	switch {
	case creds == "":
		return nil
	case strings.HasPrefix(creds, "{"):
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	default:
		return []option.ClientOption{option.WithCredentialsFile(creds)}
	}
}
