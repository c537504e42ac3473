package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"dashboard": map[string]any{
			"fetchTimeout": "10s",
			"mountTTL":     "2m",
		},
		"supabase": map[string]any{
			"apiKey": "",
		},
		"auth": map[string]any{
			"jwtSecret": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "DASHBOARD_FETCHTIMEOUT", want: "dashboard.fetchTimeout"},
		{envKey: "DASHBOARD_MOUNTTTL", want: "dashboard.mountTTL"},
		{envKey: "SUPABASE_APIKEY", want: "supabase.apiKey"},
		{envKey: "AUTH_JWTSECRET", want: "auth.jwtSecret"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
