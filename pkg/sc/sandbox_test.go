// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sc_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/lazycatapps/wasscan/internal/handler"
	"github.com/lazycatapps/wasscan/internal/pkg/logger"
	"github.com/lazycatapps/wasscan/internal/repository"
	"github.com/lazycatapps/wasscan/internal/router"
	"github.com/lazycatapps/wasscan/internal/service"
	"github.com/lazycatapps/wasscan/internal/types"
	"github.com/lazycatapps/wasscan/pkg/sc"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startSandbox(t *testing.T, cfg *types.Config) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo, err := repository.NewFileBasedWasScanRepository(t.TempDir())
	require.NoError(t, err)
	svc := service.NewWasScanService(repo, nil, logger.Nop{})
	engine := router.New(handler.NewWasScanHandler(svc, logger.Nop{})).Setup(cfg)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestSandboxRoundTrip(t *testing.T) {
	cfg := &types.Config{Sandbox: types.SandboxConfig{AccessKey: "AK", SecretKey: "SK"}}
	client, err := sc.New(sc.Config{URL: startSandbox(t, cfg), AccessKey: "AK", SecretKey: "SK"})
	require.NoError(t, err)
	ctx := context.Background()

	created, err := client.WasScans.Create(ctx, &sc.WasScanRequest{
		Name:          "Nightly",
		RepositoryID:  sc.Int(5),
		DHCPTracking:  sc.Bool(true),
		ScheduleType:  sc.String(sc.ScheduleICal),
		Reports:       []sc.Report{{ID: 1, Source: sc.ReportCumulative}},
		Assets:        []int{2, 3},
		TimeoutAction: sc.String(sc.TimeoutDiscard),
		MaxScanTime:   sc.Int(1800),
	})
	require.NoError(t, err)
	id := created["id"].(string)
	assert.Equal(t, "Nightly", created["name"])
	assert.Equal(t, map[string]interface{}{"id": "5"}, created["repository"])
	assert.Equal(t, "true", created["dhcpTracking"])
	assert.Equal(t, "1800", created["maxScanTime"])

	listed, err := client.WasScans.List(ctx, []string{"id", "name"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, map[string]interface{}{"id": id, "name": "Nightly"}, listed[0])

	edited, err := client.WasScans.Edit(ctx, id, &sc.WasScanRequest{Name: "Weekly", Description: sc.String("changed")})
	require.NoError(t, err)
	assert.Equal(t, "Weekly", edited["name"])
	assert.Equal(t, "discard", edited["timeoutAction"])

	details, err := client.WasScans.Details(ctx, id, []string{"description"})
	require.NoError(t, err)
	assert.Equal(t, "changed", details["description"])

	copied, err := client.WasScans.Copy(ctx, sc.CopyRequest{UUID: sc.String(created["uuid"].(string)), Name: "Weekly copy"})
	require.NoError(t, err)
	assert.NotEqual(t, id, copied["id"])
	assert.Equal(t, "Weekly copy", copied["name"])

	raw, err := client.WasScans.Delete(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, raw["error_code"])
	assert.Contains(t, raw, "response")

	_, err = client.WasScans.Details(ctx, id, nil)
	var apiErr *sc.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.NotFound())
	assert.Equal(t, 143, apiErr.Code)
}

func TestSandboxRejectsBadKey(t *testing.T) {
	cfg := &types.Config{Sandbox: types.SandboxConfig{AccessKey: "AK", SecretKey: "SK"}}
	client, err := sc.New(sc.Config{URL: startSandbox(t, cfg), AccessKey: "AK", SecretKey: "wrong"})
	require.NoError(t, err)

	_, err = client.WasScans.List(context.Background(), nil)
	var apiErr *sc.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
	assert.Equal(t, 74, apiErr.Code)
}
