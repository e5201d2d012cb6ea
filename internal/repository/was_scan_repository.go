// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package repository provides the storage layer for sandbox WAS scans.
package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/lazycatapps/wasscan/internal/models"
)

// WasScanRepository defines the interface for WAS scan storage operations.
// Implementations store and return copies, so callers may mutate results freely.
type WasScanRepository interface {
	// NextID reserves the next sequential scan id.
	NextID() string

	// Create adds a new scan to the repository.
	Create(scan *models.WasScan) error

	// GetByID retrieves a scan by its numeric id.
	// Returns nil if the scan does not exist.
	GetByID(id string) (*models.WasScan, error)

	// GetByUUID retrieves a scan by its uuid.
	// Returns nil if the scan does not exist.
	GetByUUID(uuid string) (*models.WasScan, error)

	// List returns every scan ordered by id.
	List() ([]*models.WasScan, error)

	// Update replaces an existing scan.
	Update(scan *models.WasScan) error

	// Delete removes a scan.
	Delete(id string) error
}

// InMemoryWasScanRepository implements WasScanRepository with in-memory storage.
// Thread-safe for concurrent access.
type InMemoryWasScanRepository struct {
	scans  map[string]*models.WasScan // Map of scan ID to scan
	lastID int                        // Highest id handed out so far
	mu     sync.RWMutex
}

// NewInMemoryWasScanRepository creates a new in-memory scan repository.
func NewInMemoryWasScanRepository() *InMemoryWasScanRepository {
	return &InMemoryWasScanRepository{
		scans: make(map[string]*models.WasScan),
	}
}

// NextID reserves the next sequential scan id.
func (r *InMemoryWasScanRepository) NextID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	return strconv.Itoa(r.lastID)
}

// Create adds a new scan to the repository.
func (r *InMemoryWasScanRepository) Create(scan *models.WasScan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scans[scan.ID]; exists {
		return fmt.Errorf("scan with ID %s already exists", scan.ID)
	}

	r.put(scan)
	return nil
}

// put stores a copy and advances the id sequence. Caller holds the lock.
func (r *InMemoryWasScanRepository) put(scan *models.WasScan) {
	r.scans[scan.ID] = scan.Clone()
	if n, err := strconv.Atoi(scan.ID); err == nil && n > r.lastID {
		r.lastID = n
	}
}

// GetByID retrieves a scan by its id.
func (r *InMemoryWasScanRepository) GetByID(id string) (*models.WasScan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scan, exists := r.scans[id]
	if !exists {
		return nil, nil // Scan not found
	}

	return scan.Clone(), nil
}

// GetByUUID retrieves a scan by its uuid.
func (r *InMemoryWasScanRepository) GetByUUID(uuid string) (*models.WasScan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, scan := range r.scans {
		if strings.EqualFold(scan.UUID, uuid) {
			return scan.Clone(), nil
		}
	}
	return nil, nil
}

// List returns every scan ordered by numeric id.
func (r *InMemoryWasScanRepository) List() ([]*models.WasScan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scans := make([]*models.WasScan, 0, len(r.scans))
	for _, scan := range r.scans {
		scans = append(scans, scan.Clone())
	}
	sortScans(scans)
	return scans, nil
}

// Update replaces an existing scan.
func (r *InMemoryWasScanRepository) Update(scan *models.WasScan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scans[scan.ID]; !exists {
		return fmt.Errorf("scan with ID %s does not exist", scan.ID)
	}

	r.scans[scan.ID] = scan.Clone()
	return nil
}

// Delete removes a scan from the repository.
func (r *InMemoryWasScanRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scans[id]; !exists {
		return fmt.Errorf("scan with ID %s does not exist", id)
	}

	delete(r.scans, id)
	return nil
}

// sortScans orders scans by numeric id, falling back to string order.
func sortScans(scans []*models.WasScan) {
	sort.Slice(scans, func(i, j int) bool {
		a, errA := strconv.Atoi(scans[i].ID)
		b, errB := strconv.Atoi(scans[j].ID)
		if errA == nil && errB == nil {
			return a < b
		}
		return scans[i].ID < scans[j].ID
	})
}

// FileBasedWasScanRepository persists each scan as {baseDir}/wasscans/{id}.json
// and serves reads from an in-memory cache loaded at startup.
type FileBasedWasScanRepository struct {
	*InMemoryWasScanRepository
	dir string
	mu  sync.Mutex // serializes file writes with cache updates
}

// NewFileBasedWasScanRepository creates a file-based repository rooted at baseDir.
func NewFileBasedWasScanRepository(baseDir string) (*FileBasedWasScanRepository, error) {
	dir := filepath.Join(baseDir, "wasscans")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scans directory: %w", err)
	}

	repo := &FileBasedWasScanRepository{
		InMemoryWasScanRepository: NewInMemoryWasScanRepository(),
		dir:                       dir,
	}

	if err := repo.loadAll(); err != nil {
		return nil, fmt.Errorf("failed to load existing scans: %w", err)
	}

	return repo, nil
}

// loadAll reads every persisted scan into the cache.
func (r *FileBasedWasScanRepository) loadAll() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return err
	}

	r.InMemoryWasScanRepository.mu.Lock()
	defer r.InMemoryWasScanRepository.mu.Unlock()

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		var scan models.WasScan
		if err := json.Unmarshal(data, &scan); err != nil {
			return fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		r.put(&scan)
	}
	return nil
}

func (r *FileBasedWasScanRepository) path(id string) string {
	return filepath.Join(r.dir, filepath.Base(id)+".json")
}

func (r *FileBasedWasScanRepository) save(scan *models.WasScan) error {
	data, err := json.MarshalIndent(scan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scan: %w", err)
	}
	if err := os.WriteFile(r.path(scan.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write scan file: %w", err)
	}
	return nil
}

// Create adds a new scan and writes it to disk.
func (r *FileBasedWasScanRepository) Create(scan *models.WasScan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, _ := r.InMemoryWasScanRepository.GetByID(scan.ID); existing != nil {
		return fmt.Errorf("scan with ID %s already exists", scan.ID)
	}
	if err := r.save(scan); err != nil {
		return err
	}
	return r.InMemoryWasScanRepository.Create(scan)
}

// Update replaces an existing scan on disk and in the cache.
func (r *FileBasedWasScanRepository) Update(scan *models.WasScan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, _ := r.InMemoryWasScanRepository.GetByID(scan.ID); existing == nil {
		return fmt.Errorf("scan with ID %s does not exist", scan.ID)
	}
	if err := r.save(scan); err != nil {
		return err
	}
	return r.InMemoryWasScanRepository.Update(scan)
}

// Delete removes a scan from disk and the cache.
func (r *FileBasedWasScanRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.InMemoryWasScanRepository.Delete(id); err != nil {
		return err
	}
	if err := os.Remove(r.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete scan file: %w", err)
	}
	return nil
}
