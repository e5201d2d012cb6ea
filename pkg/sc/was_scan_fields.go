// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sc

import (
	"github.com/lazycatapps/wasscan/internal/pkg/validator"
)

// keywordSetter type-checks one keyword value and stores it on the request.
type keywordSetter func(r *WasScanRequest, v interface{}) error

func setString(field string, dst func(*WasScanRequest) **string) keywordSetter {
	return func(r *WasScanRequest, v interface{}) error {
		s, err := validator.AsString(field, v)
		if err != nil {
			return err
		}
		*dst(r) = &s
		return nil
	}
}

func setInt(field string, dst func(*WasScanRequest) **int) keywordSetter {
	return func(r *WasScanRequest, v interface{}) error {
		n, err := validator.AsInt(field, v)
		if err != nil {
			return err
		}
		*dst(r) = &n
		return nil
	}
}

func setBool(field string, dst func(*WasScanRequest) **bool) keywordSetter {
	return func(r *WasScanRequest, v interface{}) error {
		b, err := validator.AsBool(field, v)
		if err != nil {
			return err
		}
		*dst(r) = &b
		return nil
	}
}

func setIDs(listField, itemField string, dst func(*WasScanRequest) *[]int) keywordSetter {
	return func(r *WasScanRequest, v interface{}) error {
		items, err := validator.AsList(listField, v)
		if err != nil {
			return err
		}
		ids := make([]int, 0, len(items))
		for _, item := range items {
			id, err := validator.AsInt(itemField, item)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		*dst(r) = ids
		return nil
	}
}

func setReports(r *WasScanRequest, v interface{}) error {
	items, err := validator.AsList("reports", v)
	if err != nil {
		return err
	}
	reports := make([]Report, 0, len(items))
	for _, item := range items {
		var rawID, rawSource interface{}
		switch e := item.(type) {
		case []interface{}:
			if len(e) != 2 {
				return validator.Newf("reports", "each report must be an [id, reportSource] pair, got %d elements", len(e))
			}
			rawID, rawSource = e[0], e[1]
		case map[string]interface{}:
			rawID, rawSource = e["id"], e["reportSource"]
		default:
			return validator.Newf("reports", "each report must be an [id, reportSource] pair or object, got %T", item)
		}
		id, err := validator.AsInt("report_id", rawID)
		if err != nil {
			return err
		}
		source, err := validator.AsString("reportSource", rawSource)
		if err != nil {
			return err
		}
		reports = append(reports, Report{ID: id, Source: source})
	}
	r.Reports = reports
	return nil
}

// wasScanKeywords lists the recognised keyword names. Anything else is ignored.
var wasScanKeywords = []struct {
	name string
	set  keywordSetter
}{
	{"name", func(r *WasScanRequest, v interface{}) error {
		s, err := validator.AsString("name", v)
		if err != nil {
			return err
		}
		r.Name = s
		return nil
	}},
	{"type", setString("type", func(r *WasScanRequest) **string { return &r.Type })},
	{"description", setString("description", func(r *WasScanRequest) **string { return &r.Description })},
	{"repository_id", setInt("repository_id", func(r *WasScanRequest) **int { return &r.RepositoryID })},
	{"zone_id", setInt("zone_id", func(r *WasScanRequest) **int { return &r.ZoneID })},
	{"dhcpTracking", setBool("dhcpTracking", func(r *WasScanRequest) **bool { return &r.DHCPTracking })},
	{"classifyMitigatedAge", setInt("classifyMitigatedAge", func(r *WasScanRequest) **int { return &r.ClassifyMitigatedAge })},
	{"schedule_type", setString("schedule_type", func(r *WasScanRequest) **string { return &r.ScheduleType })},
	{"reports", setReports},
	{"assets", setIDs("assets", "asset", func(r *WasScanRequest) *[]int { return &r.Assets })},
	{"credentials", setIDs("credentials", "credentials", func(r *WasScanRequest) *[]int { return &r.Credentials })},
	{"emailOnLaunch", setBool("emailOnLaunch", func(r *WasScanRequest) **bool { return &r.EmailOnLaunch })},
	{"emailOnFinish", setBool("emailOnFinish", func(r *WasScanRequest) **bool { return &r.EmailOnFinish })},
	{"timeoutAction", setString("timeoutAction", func(r *WasScanRequest) **string { return &r.TimeoutAction })},
	{"scanningVirtualHosts", setBool("scanningVirtualHosts", func(r *WasScanRequest) **bool { return &r.ScanningVirtualHosts })},
	{"rolloverType", setString("rolloverType", func(r *WasScanRequest) **string { return &r.RolloverType })},
	{"urlList", setString("urlList", func(r *WasScanRequest) **string { return &r.URLList })},
	{"maxScanTime", setInt("maxScanTime", func(r *WasScanRequest) **int { return &r.MaxScanTime })},
}

// ParseWasScanFields converts keyword-style attributes, as decoded from YAML or
// JSON, into a WasScanRequest. Recognised keys are type-checked; unrecognised
// keys are ignored. Enumerations and the required name are checked by Build.
func ParseWasScanFields(fields map[string]interface{}) (*WasScanRequest, error) {
	r := &WasScanRequest{}
	for _, kw := range wasScanKeywords {
		v, ok := fields[kw.name]
		if !ok {
			continue
		}
		if err := kw.set(r, v); err != nil {
			return nil, err
		}
	}
	return r, nil
}
