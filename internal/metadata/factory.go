// file: internal/metadata/factory.go
// version: 1.0.0
// guid: e63fcb2e-d1d6-4d64-8aff-103e212e0cfc

package metadata

import (
	"fmt"

	"github.com/jdfalk/isbn-renamer/internal/config"
)

// NewSourceFromConfig builds the configured provider chain, throttled to the
// configured request rate.
func NewSourceFromConfig(cfg *config.Config) (MetadataSource, error) {
	providers, err := cfg.Providers()
	if err != nil {
		return nil, err
	}

	sources := make([]MetadataSource, 0, len(providers))
	for _, p := range providers {
		switch p {
		case config.ProviderOpenLibrary:
			sources = append(sources, NewOpenLibraryClient(ClientOptions{
				BaseURL:   cfg.OpenLibraryBaseURL,
				Timeout:   cfg.HTTPTimeout,
				UserAgent: cfg.UserAgent,
			}))
		case config.ProviderGoogleBooks:
			sources = append(sources, NewGoogleBooksClient(ClientOptions{
				BaseURL:   cfg.GoogleBooksBaseURL,
				Timeout:   cfg.HTTPTimeout,
				UserAgent: cfg.UserAgent,
			}))
		default:
			return nil, fmt.Errorf("unsupported metadata provider %q", p)
		}
	}

	var source MetadataSource
	if len(sources) == 1 {
		source = sources[0]
	} else {
		source = NewChain(sources...)
	}
	return NewThrottled(source, cfg.RequestsPerMinute), nil
}
