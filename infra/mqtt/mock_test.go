package mqtt

import (
	"testing"

	"github.com/ouestbat/chantier/core/plan"
)

func TestMockPublisher(t *testing.T) {
	m := NewMockPublisher()
	items := []plan.ScheduledItem{{ID: "1", Name: "Pose"}}
	if err := m.PublishSchedule("r1", items); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(m.Published["r1"]) != 1 {
		t.Fatalf("schedule not recorded: %+v", m.Published)
	}

	m.Fail = true
	if err := m.PublishSchedule("r2", items); err == nil {
		t.Fatal("expected failure")
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if cfg.Topic != "chantier/schedule" {
		t.Fatalf("topic default: %s", cfg.Topic)
	}
	if cfg.ClientID == "" || cfg.MaxRetries != 3 || cfg.BackoffMS != 500 {
		t.Fatalf("defaults: %+v", cfg)
	}
}
