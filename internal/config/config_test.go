package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 || cfg.DatabasePath != "barterbot.db" {
		t.Errorf("got port %d path %q", cfg.Port, cfg.DatabasePath)
	}
	if cfg.Limits.MaxTitle != 100 || cfg.Limits.MaxDescription != 1000 || cfg.Limits.MaxTags != 10 {
		t.Errorf("got limits %+v", cfg.Limits)
	}
	if cfg.SessionMaxAge != 30*time.Minute {
		t.Errorf("got session max age %v", cfg.SessionMaxAge)
	}
	if cfg.Admins.IsAdmin(1) {
		t.Error("empty allow-list admitted someone")
	}
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load without token succeeded")
	}
}

func TestLoadAdminList(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_USER_IDS", "10, 20,30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, id := range []int64{10, 20, 30} {
		if !cfg.Admins.IsAdmin(id) {
			t.Errorf("id %d not admitted", id)
		}
	}
	if cfg.Admins.IsAdmin(40) {
		t.Error("id 40 admitted")
	}
	if got := cfg.Admins.AdminIDs(); len(got) != 3 {
		t.Errorf("got %v", got)
	}

	t.Setenv("ADMIN_USER_IDS", "10,abc")
	if _, err := Load(); err == nil {
		t.Error("bad admin id accepted")
	}
}

func TestLoadRejectsBadLimits(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("MAX_TITLE_LENGTH", "1")
	if _, err := Load(); err == nil {
		t.Fatal("title limit below minimum accepted")
	}
}
