package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate reports every problem found in the configuration.
func (c Config) Validate() error {
	var errs []error
	if err := validateHTTPURL("index_url", c.IndexURL); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Proxy) != "" {
		if err := ValidateProxy(c.Proxy); err != nil {
			errs = append(errs, err)
		}
	}
	if strings.TrimSpace(c.BinDir) == "" {
		errs = append(errs, errors.New("bin_dir must not be empty"))
	}
	if name := strings.TrimSpace(c.WrapperName); name == "" {
		errs = append(errs, errors.New("wrapper_name must not be empty"))
	} else if strings.ContainsAny(name, `/\`) {
		errs = append(errs, fmt.Errorf("wrapper_name %q must be a file name, not a path", name))
	}
	return errors.Join(errs...)
}

// ValidateProxy checks that a proxy value is an absolute URL with a host.
func ValidateProxy(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("proxy %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http", "https", "socks5", "socks5h":
	default:
		return fmt.Errorf("proxy %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("proxy %q: missing host", raw)
	}
	return nil
}

func validateHTTPURL(field, raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s %q: %w", field, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s %q: scheme must be http or https", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s %q: missing host", field, raw)
	}
	return nil
}
