// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sc

// SecurityCenter groups the resource APIs behind one configured Client.
type SecurityCenter struct {
	*Client
	WasScans *WasScanAPI
}

// New returns a SecurityCenter for cfg.
func New(cfg Config) (*SecurityCenter, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &SecurityCenter{
		Client:   c,
		WasScans: NewWasScanAPI(c),
	}, nil
}
