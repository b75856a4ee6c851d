package cron

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// Service sweeps expired uploaded documents out of the temp directory.
type Service struct {
	uploadTempDir string
	expireHours   int
	stopChan      chan struct{}
}

func NewService(uploadTempDir string, expireHours int) *Service {
	return &Service{
		uploadTempDir: uploadTempDir,
		expireHours:   expireHours,
		stopChan:      make(chan struct{}),
	}
}

// Start launches the background sweep.
func (s *Service) Start() {
	go s.runCleanup()
	log.Println("Cron service started (upload temp cleanup)")
}

// Stop terminates the background sweep.
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

func (s *Service) runCleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.CleanupNow()
		}
	}
}

// CleanupNow removes uploads older than the expiry window. Exposed so
// tests and manual maintenance can trigger a sweep directly.
func (s *Service) CleanupNow() int {
	if s.uploadTempDir == "" {
		return 0
	}

	expireHours := s.expireHours
	if expireHours <= 0 {
		expireHours = 1
	}
	expireDuration := time.Duration(expireHours) * time.Hour

	entries, err := os.ReadDir(s.uploadTempDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Cleanup uploads: failed to read dir %s: %v", s.uploadTempDir, err)
		}
		return 0
	}

	cleaned := 0
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) > expireDuration {
			path := filepath.Join(s.uploadTempDir, entry.Name())
			if err := os.RemoveAll(path); err != nil {
				log.Printf("Cleanup uploads: failed to remove %s: %v", path, err)
			} else {
				cleaned++
			}
		}
	}

	if cleaned > 0 {
		log.Printf("Cleanup summary: removed %d expired uploads", cleaned)
	}
	return cleaned
}
