package config

import (
	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"
)

// NewSupabaseClient constructs the Supabase client from the loaded
// configuration. Missing credentials are reported loudly but do not abort
// startup: the client is built with placeholder values so every later call
// fails with an ordinary transport error instead of crashing the process.
func NewSupabaseClient(cfg *Config, log *logrus.Logger) (*supa.Client, error) {
	url := cfg.SupabaseURL
	key := cfg.SupabaseAnonKey

	if url == "" || key == "" {
		log.WithFields(logrus.Fields{
			"has_url": url != "",
			"has_key": key != "",
		}).Error("Missing Supabase environment variables")
		if url == "" {
			url = "http://127.0.0.1:54321"
		}
		if key == "" {
			key = "missing-anon-key"
		}
	}

	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		log.Errorf("Error initializing Supabase client: %v", err)
		return nil, err
	}

	if cfg.IsDev() {
		log.WithField("url", url).Info("Supabase client initialized")
	}
	return client, nil
}
