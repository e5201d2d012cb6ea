// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sc

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/lazycatapps/wasscan/internal/pkg/validator"
)

const wasScanRoute = "wasScan"

// WasScanAPI manages web-application-security scan configurations.
type WasScanAPI struct {
	api *Client
}

// NewWasScanAPI returns the wasScan resource bound to c.
func NewWasScanAPI(c *Client) *WasScanAPI {
	return &WasScanAPI{api: c}
}

// CopyRequest selects the scan to copy. Exactly one of ID and UUID must be set.
type CopyRequest struct {
	ID   *int
	UUID *string
	Name string
}

func fieldsParam(fields []string) (url.Values, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	if err := validator.ValidateFieldNames(fields); err != nil {
		return nil, err
	}
	return url.Values{"fields": {strings.Join(fields, ",")}}, nil
}

// Create creates a scan and returns the created resource.
func (w *WasScanAPI) Create(ctx context.Context, req *WasScanRequest) (map[string]interface{}, error) {
	body, err := req.Build()
	if err != nil {
		return nil, err
	}
	resp, err := w.api.Post(ctx, wasScanRoute, body)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := resp.Envelope(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns all scans visible to the caller. fields limits the
// attributes returned for each scan.
func (w *WasScanAPI) List(ctx context.Context, fields []string) ([]map[string]interface{}, error) {
	params, err := fieldsParam(fields)
	if err != nil {
		return nil, err
	}
	resp, err := w.api.Get(ctx, wasScanRoute, params)
	if err != nil {
		return nil, err
	}
	var out []map[string]interface{}
	if err := resp.Envelope(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Details returns one scan.
func (w *WasScanAPI) Details(ctx context.Context, id string, fields []string) (map[string]interface{}, error) {
	if err := validator.ValidateResourceID("scan_id", id); err != nil {
		return nil, err
	}
	params, err := fieldsParam(fields)
	if err != nil {
		return nil, err
	}
	resp, err := w.api.Get(ctx, wasScanRoute+"/"+id, params)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := resp.Envelope(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Edit applies a partial update. The body is built exactly as for Create.
func (w *WasScanAPI) Edit(ctx context.Context, id string, req *WasScanRequest) (map[string]interface{}, error) {
	if err := validator.ValidateResourceID("scan_id", id); err != nil {
		return nil, err
	}
	body, err := req.Build()
	if err != nil {
		return nil, err
	}
	resp, err := w.api.Patch(ctx, wasScanRoute+"/"+id, body)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := resp.Envelope(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a scan. Unlike the other methods it returns the whole
// decoded body, envelope included.
func (w *WasScanAPI) Delete(ctx context.Context, id string) (map[string]interface{}, error) {
	if err := validator.ValidateResourceID("scan_id", id); err != nil {
		return nil, err
	}
	resp, err := w.api.Delete(ctx, wasScanRoute+"/"+id)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Copy duplicates the scan selected by id or uuid under a new name.
func (w *WasScanAPI) Copy(ctx context.Context, req CopyRequest) (map[string]interface{}, error) {
	if (req.ID == nil) == (req.UUID == nil) {
		return nil, validator.Newf("scan_id", "exactly one of [scan_id, scan_uuid] must be supplied")
	}
	if err := validator.RequireString("name", req.Name); err != nil {
		return nil, err
	}

	var path string
	target := map[string]interface{}{}
	if req.ID != nil {
		target["id"] = *req.ID
		path = wasScanRoute + "/" + strconv.Itoa(*req.ID) + "/copy"
	} else {
		if err := validator.ValidateResourceID("scan_uuid", *req.UUID); err != nil {
			return nil, err
		}
		target["uuid"] = *req.UUID
		path = wasScanRoute + "/" + *req.UUID + "/copy"
	}
	body := map[string]interface{}{
		"name":       req.Name,
		"targetUser": target,
	}

	resp, err := w.api.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := resp.Envelope(&out); err != nil {
		return nil, err
	}
	return out, nil
}
