// Package secrets resolves gateway credentials from mounted secret files,
// falling back to the process environment.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"storefront/pkg/utils"
)

const (
	StripeSecretKey     = "STRIPE_SECRET_KEY"
	StripeWebhookSecret = "STRIPE_WEBHOOK_SECRET"
)

type Resolver interface {
	Resolve(name string) (string, bool)
}

type layeredResolver struct {
	dir    string
	lookup func(string) (string, bool)
}

func NewResolver(dir string) Resolver {
	return &layeredResolver{dir: dir, lookup: os.LookupEnv}
}

func (r *layeredResolver) Resolve(name string) (string, bool) {
	if r.dir != "" {
		if b, err := os.ReadFile(filepath.Join(r.dir, name)); err == nil {
			if v := strings.TrimSpace(string(b)); v != "" {
				return v, true
			}
		}
	}

	v, ok := r.lookup(name)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Require resolves every name or fails with ErrConfiguration naming the first one missing.
func Require(r Resolver, names ...string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, name := range names {
		v, ok := r.Resolve(name)
		if !ok {
			return nil, fmt.Errorf("%w: secret %s is not set", utils.ErrConfiguration, name)
		}
		out[name] = v
	}
	return out, nil
}
