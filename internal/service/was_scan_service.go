// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package service provides the business logic of the sandbox Security Center.
package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/lazycatapps/wasscan/internal/models"
	"github.com/lazycatapps/wasscan/internal/pkg/errors"
	"github.com/lazycatapps/wasscan/internal/pkg/logger"
	"github.com/lazycatapps/wasscan/internal/pkg/validator"
	"github.com/lazycatapps/wasscan/internal/repository"

	"github.com/google/uuid"
)

// Clock supplies the current time; replaced in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// WasScanService defines the operations exposed by the sandbox wasScan endpoints.
// ref arguments accept either a numeric id or a uuid.
type WasScanService interface {
	Create(in *models.WasScanInput) (*models.WasScan, error)
	List() ([]*models.WasScan, error)
	Get(ref string) (*models.WasScan, error)
	Update(ref string, in *models.WasScanInput) (*models.WasScan, error)
	Delete(ref string) error
	Copy(ref string, in *models.CopyInput) (*models.WasScan, error)
}

type wasScanServiceImpl struct {
	repo   repository.WasScanRepository
	clock  Clock
	logger logger.Logger

	// mu serializes writes so an update's read-apply-store is atomic.
	mu sync.Mutex
}

// NewWasScanService creates a WasScanService on top of repo.
func NewWasScanService(repo repository.WasScanRepository, clock Clock, log logger.Logger) WasScanService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &wasScanServiceImpl{
		repo:   repo,
		clock:  clock,
		logger: log,
	}
}

func (s *wasScanServiceImpl) timestamp() string {
	return strconv.FormatInt(s.clock.Now().Unix(), 10)
}

// Create validates the input and stores a new scan with server defaults.
func (s *wasScanServiceImpl) Create(in *models.WasScanInput) (*models.WasScan, error) {
	if in == nil || in.Name == nil {
		return nil, errors.NewInvalidInput("name is required")
	}
	if err := validateInput(in); err != nil {
		return nil, errors.NewInvalidInput(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scan := models.NewWasScan(s.repo.NextID(), uuid.NewString())
	applyInput(scan, in)
	scan.CreatedTime = s.timestamp()
	scan.ModifiedTime = scan.CreatedTime

	if err := s.repo.Create(scan); err != nil {
		s.logger.Error("Failed to store scan %s: %v", scan.ID, err)
		return nil, errors.WrapInternal(err, "Failed to store scan")
	}

	s.logger.Info("Created WAS scan %s (%s)", scan.ID, scan.Name)
	return scan, nil
}

// List returns every stored scan.
func (s *wasScanServiceImpl) List() ([]*models.WasScan, error) {
	scans, err := s.repo.List()
	if err != nil {
		return nil, errors.WrapInternal(err, "Failed to list scans")
	}
	return scans, nil
}

// Get resolves ref to a scan.
func (s *wasScanServiceImpl) Get(ref string) (*models.WasScan, error) {
	if err := validator.ValidateResourceID("id", ref); err != nil {
		return nil, errors.NewInvalidInput(err.Error())
	}

	var (
		scan *models.WasScan
		err  error
	)
	if _, convErr := strconv.Atoi(ref); convErr == nil {
		scan, err = s.repo.GetByID(ref)
	} else {
		scan, err = s.repo.GetByUUID(ref)
	}
	if err != nil {
		return nil, errors.WrapInternal(err, "Failed to load scan")
	}
	if scan == nil {
		return nil, errors.NewNotFound(fmt.Sprintf("WAS Scan #%s not found", ref))
	}
	return scan, nil
}

// Update applies the supplied members of in to the scan.
func (s *wasScanServiceImpl) Update(ref string, in *models.WasScanInput) (*models.WasScan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scan, err := s.Get(ref)
	if err != nil {
		return nil, err
	}
	if in == nil {
		in = &models.WasScanInput{}
	}
	if err := validateInput(in); err != nil {
		return nil, errors.NewInvalidInput(err.Error())
	}

	applyInput(scan, in)
	scan.ModifiedTime = s.timestamp()

	if err := s.repo.Update(scan); err != nil {
		s.logger.Error("Failed to update scan %s: %v", scan.ID, err)
		return nil, errors.WrapInternal(err, "Failed to update scan")
	}

	s.logger.Info("Updated WAS scan %s", scan.ID)
	return scan, nil
}

// Delete removes the scan resolved from ref.
func (s *wasScanServiceImpl) Delete(ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scan, err := s.Get(ref)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(scan.ID); err != nil {
		return errors.WrapInternal(err, "Failed to delete scan")
	}
	s.logger.Info("Deleted WAS scan %s", scan.ID)
	return nil
}

// Copy duplicates the scan resolved from ref under a new name.
func (s *wasScanServiceImpl) Copy(ref string, in *models.CopyInput) (*models.WasScan, error) {
	if in == nil || in.Name == "" {
		return nil, errors.NewInvalidInput("name is required")
	}
	if in.TargetUser.ID == nil && in.TargetUser.UUID == "" {
		return nil, errors.NewInvalidInput("targetUser requires an id or uuid")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.Get(ref)
	if err != nil {
		return nil, err
	}

	dup := src.Clone()
	dup.ID = s.repo.NextID()
	dup.UUID = uuid.NewString()
	dup.Name = in.Name
	target := in.TargetUser
	dup.Owner = &target
	dup.CreatedTime = s.timestamp()
	dup.ModifiedTime = dup.CreatedTime

	if err := s.repo.Create(dup); err != nil {
		return nil, errors.WrapInternal(err, "Failed to store copied scan")
	}

	s.logger.Info("Copied WAS scan %s to %s (%s)", src.ID, dup.ID, dup.Name)
	return dup, nil
}

// validateInput enforces the string-typed encodings and enumerations.
func validateInput(in *models.WasScanInput) error {
	if in.Name != nil {
		if err := validator.RequireString("name", *in.Name); err != nil {
			return err
		}
	}
	for field, v := range map[string]*string{
		"dhcpTracking":         in.DHCPTracking,
		"emailOnLaunch":        in.EmailOnLaunch,
		"emailOnFinish":        in.EmailOnFinish,
		"scanningVirtualHosts": in.ScanningVirtualHosts,
	} {
		if v != nil {
			if err := validator.CheckChoice(field, *v, []string{models.True, models.False}); err != nil {
				return err
			}
		}
	}
	numeric := map[string]*string{
		"classifyMitigatedAge": in.ClassifyMitigatedAge,
		"maxScanTime":          in.MaxScanTime,
	}
	if in.Repository != nil {
		numeric["repository.id"] = &in.Repository.ID
	}
	if in.Zone != nil {
		numeric["zone.id"] = &in.Zone.ID
	}
	for field, v := range numeric {
		if v != nil {
			if _, err := strconv.Atoi(*v); err != nil {
				return validator.Newf(field, "%q is not a number", *v)
			}
		}
	}
	if in.Schedule != nil {
		if err := validator.CheckChoice("schedule.type", in.Schedule.Type, models.ScheduleTypes); err != nil {
			return err
		}
	}
	if in.TimeoutAction != nil {
		if err := validator.CheckChoice("timeoutAction", *in.TimeoutAction, models.TimeoutActions); err != nil {
			return err
		}
	}
	if in.RolloverType != nil {
		if err := validator.CheckChoice("rolloverType", *in.RolloverType, models.RolloverTypes); err != nil {
			return err
		}
	}
	if in.Reports != nil {
		for _, r := range *in.Reports {
			if err := validator.CheckChoice("reportSource", r.ReportSource, models.ReportSources); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyInput copies every supplied member of in onto scan.
func applyInput(scan *models.WasScan, in *models.WasScanInput) {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&scan.Name, in.Name)
	setString(&scan.Type, in.Type)
	setString(&scan.Description, in.Description)
	setString(&scan.DHCPTracking, in.DHCPTracking)
	setString(&scan.ClassifyMitigatedAge, in.ClassifyMitigatedAge)
	setString(&scan.EmailOnLaunch, in.EmailOnLaunch)
	setString(&scan.EmailOnFinish, in.EmailOnFinish)
	setString(&scan.TimeoutAction, in.TimeoutAction)
	setString(&scan.ScanningVirtualHosts, in.ScanningVirtualHosts)
	setString(&scan.RolloverType, in.RolloverType)
	setString(&scan.URLList, in.URLList)
	setString(&scan.MaxScanTime, in.MaxScanTime)

	if in.Repository != nil {
		r := *in.Repository
		scan.Repository = &r
	}
	if in.Zone != nil {
		z := *in.Zone
		scan.Zone = &z
	}
	if in.Schedule != nil {
		scan.Schedule = *in.Schedule
	}
	if in.Reports != nil {
		scan.Reports = append([]models.ReportRef{}, *in.Reports...)
	}
	if in.Assets != nil {
		scan.Assets = append([]models.ObjectRef{}, *in.Assets...)
	}
	if in.Credentials != nil {
		scan.Credentials = append([]models.ObjectRef{}, *in.Credentials...)
	}
}

// Project renders scan as a plain mapping. When fields is non-empty only
// those attributes, plus id, are kept.
func Project(scan *models.WasScan, fields []string) (map[string]interface{}, error) {
	data, err := json.Marshal(scan)
	if err != nil {
		return nil, err
	}
	var full map[string]interface{}
	if err := json.Unmarshal(data, &full); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return full, nil
	}

	out := map[string]interface{}{"id": full["id"]}
	for _, f := range fields {
		if v, ok := full[f]; ok {
			out[f] = v
		}
	}
	return out, nil
}
