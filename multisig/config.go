// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"encoding/json"
	"fmt"
)

const defaultBlockExpiry = 10

// DefaultConfig returns the coordinator defaults.
func DefaultConfig() Config {
	return Config{
		BlockExpiry: defaultBlockExpiry,
	}
}

// ParseConfig merges configuration bytes over the defaults. Empty input
// yields the defaults unchanged.
func ParseConfig(b []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(b) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.BlockExpiry == 0 {
		return Config{}, fmt.Errorf("blockExpiry must be positive")
	}
	return cfg, nil
}
