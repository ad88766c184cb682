// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.Output == nil {
		t.Error("Output should default to stderr")
	}
}

func TestInit(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})

	Debug().Str("recipe", "borscht").Msg("debug entry")
	Info().Msg("info entry")

	out := buf.String()
	for _, want := range []string{"debug entry", "info entry", `"recipe":"borscht"`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
	if GetLevel() != zerolog.DebugLevel {
		t.Errorf("GetLevel() = %v, want debug", GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{" fatal ", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"off", zerolog.Disabled},
		{"disabled", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWithComponent(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	l := WithComponent("database")
	l.Info().Msg("schema ready")

	if !strings.Contains(buf.String(), `"component":"database"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}

func TestCtx(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-42")
	ctx = ContextWithUserID(ctx, 7)

	Ctx(ctx).Info().Msg("handled")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-42"`) {
		t.Errorf("request_id missing: %s", out)
	}
	if !strings.Contains(out, `"user_id":7`) {
		t.Errorf("user_id missing: %s", out)
	}
}

func TestContextIDs_Empty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
	if got := UserIDFromContext(ctx); got != 0 {
		t.Errorf("UserIDFromContext() = %d, want 0", got)
	}
	if a, b := GenerateRequestID(), GenerateRequestID(); a == b || len(a) != 36 {
		t.Errorf("GenerateRequestID() produced %q and %q", a, b)
	}
}
