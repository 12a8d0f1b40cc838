// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string) <-chan RomcalcConfig {
	t.Helper()
	reloads := make(chan RomcalcConfig, 16)

	w, err := NewWatcher(path, func(cfg RomcalcConfig) { reloads <- cfg })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Stop()
	})
	return reloads
}

func waitReload(t *testing.T, reloads <-chan RomcalcConfig, want func(RomcalcConfig) bool) RomcalcConfig {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloads:
			if want(cfg) {
				return cfg
			}
		case <-timeout:
			t.Fatal("timed out waiting for config reload")
			return RomcalcConfig{}
		}
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "server:\n  rate_limit: 5\n")
	reloads := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("server:\n  rate_limit: 9\n  burst: 3\n"), 0644))

	cfg := waitReload(t, reloads, func(c RomcalcConfig) bool { return c.Server.RateLimit == 9 })
	assert.Equal(t, 3, cfg.Server.Burst)
}

func TestWatcher_SeesCreateOfMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "romcalc.yaml")
	reloads := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("batch:\n  workers: 7\n"), 0644))

	cfg := waitReload(t, reloads, func(c RomcalcConfig) bool { return c.Batch.Workers == 7 })
	assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
}

func TestWatcher_SkipsInvalidFile(t *testing.T) {
	path := writeFile(t, "server:\n  rate_limit: 5\n")
	reloads := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("batch:\n  workers: -1\n"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("server:\n  rate_limit: 11\n"), 0644))

	cfg := waitReload(t, reloads, func(c RomcalcConfig) bool { return c.Server.RateLimit == 11 })
	assert.Equal(t, DefaultConfig().Batch.Workers, cfg.Batch.Workers)
	for {
		select {
		case c := <-reloads:
			assert.NotEqual(t, -1, c.Batch.Workers)
		default:
			return
		}
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	path := writeFile(t, "server:\n  rate_limit: 5\n")
	reloads := startWatcher(t, path)

	other := filepath.Join(filepath.Dir(path), "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("server:\n  rate_limit: 1\n"), 0644))

	select {
	case cfg := <-reloads:
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "no", "such", "romcalc.yaml"), nil)
	assert.Error(t, err)
}
