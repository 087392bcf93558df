// Package diskinfo reports disk usage for a vault data directory.
package diskinfo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/disk"
	"github.com/sirupsen/logrus"
)

// DirectorySize walks path and sums the size of regular files beneath it.
func DirectorySize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}

// Report logs total, used and free space of the filesystem holding path,
// along with the space the directory itself occupies.
func Report(log *logrus.Logger, path string) error {
	usage, err := disk.Usage(path)
	if err != nil {
		return fmt.Errorf("failed to read disk usage for %s: %w", path, err)
	}

	dirSize, err := DirectorySize(path)
	if err != nil {
		return fmt.Errorf("failed to measure directory %s: %w", path, err)
	}

	log.WithFields(logrus.Fields{
		"path":       path,
		"total_gb":   fmt.Sprintf("%.2f", float64(usage.Total)/1e9),
		"used_gb":    fmt.Sprintf("%.2f", float64(usage.Used)/1e9),
		"free_gb":    fmt.Sprintf("%.2f", float64(usage.Free)/1e9),
		"vault_size": dirSize,
	}).Info("Disk usage for vault path")

	return nil
}
