package common

import (
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ValidatePort validates a port number (1-65535)
func ValidatePort(port string) error {
	p, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port number: %s", port)
	}

	if p < 1 || p > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got: %d", p)
	}

	return nil
}

// ValidateListenAddr validates a host:port listen address. The host may be empty (":3000").
func ValidateListenAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	return ValidatePort(port)
}

// ValidateURL validates an absolute http(s) base URL
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("url cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url must use http or https: %s", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("url must include a host: %s", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("base url cannot carry a query or fragment: %s", raw)
	}

	return nil
}

// ValidateRouteTarget validates the path of a route file to overwrite.
// It must name a file, not a directory.
func ValidateRouteTarget(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("target path cannot be empty")
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return fmt.Errorf("target path must name a file: %s", path)
	}
	base := filepath.Base(path)
	if base == "." || base == ".." {
		return fmt.Errorf("target path must name a file: %s", path)
	}
	return nil
}

// ValidateResourceID validates a single path segment identifying a resource
func ValidateResourceID(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if len(id) > 128 {
		return fmt.Errorf("id too long (max 128 characters)")
	}
	if id == "." || id == ".." {
		return fmt.Errorf("id cannot be '.' or '..'")
	}

	for _, c := range id {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-' || c == '.') {
			return fmt.Errorf("id contains invalid character: %q", id)
		}
	}

	return nil
}

// ValidateDuration validates a positive Go duration string ("15s", "2m")
func ValidateDuration(value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration: %s", value)
	}
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got: %s", value)
	}
	return nil
}

// ValidateNotEmpty validates that a string is not empty
func ValidateNotEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value cannot be empty")
	}
	return nil
}
