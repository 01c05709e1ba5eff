package flywheel

import (
	"fmt"
	"strings"
)

// ParseAPIKey splits a Flywheel API key of the form "<host>[:<port>]:<key>"
// into the site base URL and the secret part.
func ParseAPIKey(apiKey string) (baseURL, key string, err error) {
	i := strings.LastIndex(apiKey, ":")
	if i <= 0 || i == len(apiKey)-1 {
		return "", "", fmt.Errorf("malformed API key: expected <host>:<key>")
	}
	host, key := apiKey[:i], apiKey[i+1:]
	if strings.Contains(host, "/") {
		return "", "", fmt.Errorf("malformed API key: host %q", host)
	}
	return "https://" + host, key, nil
}
