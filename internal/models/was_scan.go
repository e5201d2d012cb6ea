// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package models defines the Security Center WAS scan resource and its wire envelope.
package models

// Permitted values for the enumerated WAS scan attributes.
var (
	ScheduleTypes  = []string{"ical", "never", "rollover", "template"}
	TimeoutActions = []string{"discard", "import", "rollover"}
	RolloverTypes  = []string{"nextDay", "template"}
	ReportSources  = []string{"cumulative", "patched", "individual", "lce", "archive", "mobile"}
)

// Security Center serializes booleans in this resource as strings.
const (
	True  = "true"
	False = "false"
)

// IDRef wraps a string-typed identifier, e.g. {"id": "5"}.
type IDRef struct {
	ID string `json:"id"`
}

// ObjectRef references an asset or credential by integer id.
type ObjectRef struct {
	ID int `json:"id"`
}

// ReportRef attaches a report definition to the scan.
type ReportRef struct {
	ID           int    `json:"id"`
	ReportSource string `json:"reportSource"`
}

// Schedule holds the recurrence policy of a scan.
type Schedule struct {
	Type string `json:"type"`
}

// UserRef identifies the user a copied scan was created for.
type UserRef struct {
	ID   *int   `json:"id,omitempty"`
	UUID string `json:"uuid,omitempty"`
}

// WasScan is a web-application-security scan configuration as stored by the server.
// Numeric attributes that Security Center treats as identifiers or counts are strings.
type WasScan struct {
	ID                   string      `json:"id"`
	UUID                 string      `json:"uuid"`
	Name                 string      `json:"name"`
	Type                 string      `json:"type"`
	Description          string      `json:"description"`
	Repository           *IDRef      `json:"repository,omitempty"`
	Zone                 *IDRef      `json:"zone,omitempty"`
	DHCPTracking         string      `json:"dhcpTracking"`
	ClassifyMitigatedAge string      `json:"classifyMitigatedAge"`
	Schedule             Schedule    `json:"schedule"`
	Reports              []ReportRef `json:"reports"`
	Assets               []ObjectRef `json:"assets"`
	Credentials          []ObjectRef `json:"credentials"`
	EmailOnLaunch        string      `json:"emailOnLaunch"`
	EmailOnFinish        string      `json:"emailOnFinish"`
	TimeoutAction        string      `json:"timeoutAction"`
	ScanningVirtualHosts string      `json:"scanningVirtualHosts"`
	RolloverType         string      `json:"rolloverType"`
	URLList              string      `json:"urlList"`
	MaxScanTime          string      `json:"maxScanTime"`
	Owner                *UserRef    `json:"owner,omitempty"`
	CreatedTime          string      `json:"createdTime"`
	ModifiedTime         string      `json:"modifiedTime"`
}

// NewWasScan returns a scan carrying the server-side defaults.
func NewWasScan(id, uuid string) *WasScan {
	return &WasScan{
		ID:                   id,
		UUID:                 uuid,
		Type:                 "was",
		DHCPTracking:         False,
		ClassifyMitigatedAge: "0",
		Schedule:             Schedule{Type: "never"},
		Reports:              []ReportRef{},
		Assets:               []ObjectRef{},
		Credentials:          []ObjectRef{},
		EmailOnLaunch:        False,
		EmailOnFinish:        False,
		TimeoutAction:        "import",
		ScanningVirtualHosts: False,
		RolloverType:         "template",
		MaxScanTime:          "3600",
	}
}

// Clone returns a deep copy of the scan.
func (s *WasScan) Clone() *WasScan {
	c := *s
	if s.Repository != nil {
		r := *s.Repository
		c.Repository = &r
	}
	if s.Zone != nil {
		z := *s.Zone
		c.Zone = &z
	}
	if s.Owner != nil {
		o := *s.Owner
		if s.Owner.ID != nil {
			id := *s.Owner.ID
			o.ID = &id
		}
		c.Owner = &o
	}
	c.Reports = append([]ReportRef{}, s.Reports...)
	c.Assets = append([]ObjectRef{}, s.Assets...)
	c.Credentials = append([]ObjectRef{}, s.Credentials...)
	return &c
}

// WasScanInput is the body accepted by create and edit. Every member is optional
// so that edit applies a partial update. The string-typed members reject native
// JSON numbers and booleans at decode time, as Security Center does.
type WasScanInput struct {
	Name                 *string      `json:"name"`
	Type                 *string      `json:"type"`
	Description          *string      `json:"description"`
	Repository           *IDRef       `json:"repository"`
	Zone                 *IDRef       `json:"zone"`
	DHCPTracking         *string      `json:"dhcpTracking"`
	ClassifyMitigatedAge *string      `json:"classifyMitigatedAge"`
	Schedule             *Schedule    `json:"schedule"`
	Reports              *[]ReportRef `json:"reports"`
	Assets               *[]ObjectRef `json:"assets"`
	Credentials          *[]ObjectRef `json:"credentials"`
	EmailOnLaunch        *string      `json:"emailOnLaunch"`
	EmailOnFinish        *string      `json:"emailOnFinish"`
	TimeoutAction        *string      `json:"timeoutAction"`
	ScanningVirtualHosts *string      `json:"scanningVirtualHosts"`
	RolloverType         *string      `json:"rolloverType"`
	URLList              *string      `json:"urlList"`
	MaxScanTime          *string      `json:"maxScanTime"`
}

// CopyInput is the body accepted by the copy endpoint.
type CopyInput struct {
	Name       string  `json:"name"`
	TargetUser UserRef `json:"targetUser"`
}
