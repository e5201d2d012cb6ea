// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sc

import (
	"strconv"

	"github.com/lazycatapps/wasscan/internal/models"
	"github.com/lazycatapps/wasscan/internal/pkg/validator"
)

// Schedule types.
const (
	ScheduleICal     = "ical"
	ScheduleNever    = "never"
	ScheduleRollover = "rollover"
	ScheduleTemplate = "template"
)

// Timeout actions.
const (
	TimeoutDiscard  = "discard"
	TimeoutImport   = "import"
	TimeoutRollover = "rollover"
)

// Rollover types.
const (
	RolloverNextDay  = "nextDay"
	RolloverTemplate = "template"
)

// Report sources.
const (
	ReportCumulative = "cumulative"
	ReportPatched    = "patched"
	ReportIndividual = "individual"
	ReportLCE        = "lce"
	ReportArchive    = "archive"
	ReportMobile     = "mobile"
)

// Report attaches a report definition to a scan.
type Report struct {
	ID     int
	Source string
}

// WasScanRequest holds the attributes accepted by create and edit.
// Nil members and empty slices are left out of the request body.
type WasScanRequest struct {
	Name                 string // required
	Type                 *string
	Description          *string
	RepositoryID         *int
	ZoneID               *int
	DHCPTracking         *bool
	ClassifyMitigatedAge *int
	ScheduleType         *string
	Reports              []Report
	Assets               []int
	Credentials          []int
	EmailOnLaunch        *bool
	EmailOnFinish        *bool
	TimeoutAction        *string
	ScanningVirtualHosts *bool
	RolloverType         *string
	URLList              *string
	MaxScanTime          *int
}

// String, Int and Bool return pointers for populating optional request members.
func String(v string) *string { return &v }
func Int(v int) *int          { return &v }
func Bool(v bool) *bool       { return &v }

// fieldRule maps one request member to one body key. encode returns nil
// when the member was not supplied.
type fieldRule struct {
	key    string
	encode func(r *WasScanRequest) (interface{}, error)
}

func optional[T any](get func(*WasScanRequest) *T, enc func(T) (interface{}, error)) func(*WasScanRequest) (interface{}, error) {
	return func(r *WasScanRequest) (interface{}, error) {
		p := get(r)
		if p == nil {
			return nil, nil
		}
		return enc(*p)
	}
}

func passthrough(v string) (interface{}, error) { return v, nil }

func boolString(v bool) (interface{}, error) {
	if v {
		return models.True, nil
	}
	return models.False, nil
}

func intString(v int) (interface{}, error) { return strconv.Itoa(v), nil }

func idRef(v int) (interface{}, error) {
	return map[string]interface{}{"id": strconv.Itoa(v)}, nil
}

func choice(field string, choices []string, wrap func(string) interface{}) func(string) (interface{}, error) {
	return func(v string) (interface{}, error) {
		if err := validator.CheckChoice(field, v, choices); err != nil {
			return nil, err
		}
		if wrap != nil {
			return wrap(v), nil
		}
		return v, nil
	}
}

func idList(get func(*WasScanRequest) []int) func(*WasScanRequest) (interface{}, error) {
	return func(r *WasScanRequest) (interface{}, error) {
		ids := get(r)
		if len(ids) == 0 {
			return nil, nil
		}
		out := make([]map[string]interface{}, 0, len(ids))
		for _, id := range ids {
			out = append(out, map[string]interface{}{"id": id})
		}
		return out, nil
	}
}

func encodeReports(r *WasScanRequest) (interface{}, error) {
	if len(r.Reports) == 0 {
		return nil, nil
	}
	out := make([]map[string]interface{}, 0, len(r.Reports))
	for _, rep := range r.Reports {
		if err := validator.CheckChoice("reportSource", rep.Source, models.ReportSources); err != nil {
			return nil, err
		}
		out = append(out, map[string]interface{}{"id": rep.ID, "reportSource": rep.Source})
	}
	return out, nil
}

// wasScanFields is walked in order by Build. name is handled separately
// because it is the only required member.
var wasScanFields = []fieldRule{
	{"type", optional(func(r *WasScanRequest) *string { return r.Type }, passthrough)},
	{"description", optional(func(r *WasScanRequest) *string { return r.Description }, passthrough)},
	{"repository", optional(func(r *WasScanRequest) *int { return r.RepositoryID }, idRef)},
	{"zone", optional(func(r *WasScanRequest) *int { return r.ZoneID }, idRef)},
	{"dhcpTracking", optional(func(r *WasScanRequest) *bool { return r.DHCPTracking }, boolString)},
	{"classifyMitigatedAge", optional(func(r *WasScanRequest) *int { return r.ClassifyMitigatedAge }, intString)},
	{"schedule", optional(func(r *WasScanRequest) *string { return r.ScheduleType },
		choice("schedule_type", models.ScheduleTypes, func(v string) interface{} {
			return map[string]interface{}{"type": v}
		}))},
	{"reports", encodeReports},
	{"assets", idList(func(r *WasScanRequest) []int { return r.Assets })},
	{"credentials", idList(func(r *WasScanRequest) []int { return r.Credentials })},
	{"emailOnLaunch", optional(func(r *WasScanRequest) *bool { return r.EmailOnLaunch }, boolString)},
	{"emailOnFinish", optional(func(r *WasScanRequest) *bool { return r.EmailOnFinish }, boolString)},
	{"timeoutAction", optional(func(r *WasScanRequest) *string { return r.TimeoutAction },
		choice("timeoutAction", models.TimeoutActions, nil))},
	{"scanningVirtualHosts", optional(func(r *WasScanRequest) *bool { return r.ScanningVirtualHosts }, boolString)},
	{"rolloverType", optional(func(r *WasScanRequest) *string { return r.RolloverType },
		choice("rolloverType", models.RolloverTypes, nil))},
	{"urlList", optional(func(r *WasScanRequest) *string { return r.URLList }, passthrough)},
	{"maxScanTime", optional(func(r *WasScanRequest) *int { return r.MaxScanTime }, intString)},
}

// Build validates the request and returns the JSON body for create or edit.
// It performs no I/O.
func (r *WasScanRequest) Build() (map[string]interface{}, error) {
	if r == nil {
		return nil, validator.Newf("name", "name is required and cannot be empty")
	}
	if err := validator.RequireString("name", r.Name); err != nil {
		return nil, err
	}

	body := map[string]interface{}{"name": r.Name}
	for _, f := range wasScanFields {
		v, err := f.encode(r)
		if err != nil {
			return nil, err
		}
		if v != nil {
			body[f.key] = v
		}
	}
	return body, nil
}
