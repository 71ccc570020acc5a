package main

import (
	"testing"
	"time"

	"github.com/atomicstack/ghflow/internal/app"
	"github.com/atomicstack/ghflow/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Repo:                 "octo/hello",
			PR:                   "12",
			MergeMethod:          "rebase",
			TickRate:             100 * time.Millisecond,
			NotificationDuration: 3 * time.Second,
			TaskTimeout:          30 * time.Second,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"repo":        "octo/hello",
			"pr":          "12",
			"mergeMethod": "rebase",
		},
		Args: []string{"--repo", "octo/hello", "--pr", "12"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["repo"] != "octo/hello" {
		t.Fatalf("expected repo flag %q, got %v", "octo/hello", flagsValue["repo"])
	}
	if flagsValue["pr"] != "12" {
		t.Fatalf("expected pr 12, got %v", flagsValue["pr"])
	}
	if flagsValue["mergeMethod"] != "rebase" {
		t.Fatalf("expected merge method rebase, got %v", flagsValue["mergeMethod"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
