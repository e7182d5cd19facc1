package jsonl

import (
	"fmt"
	"io"
	"os"

	"foley-demo-prep/internal/logging"
)

// Backup copies manifestPath to manifestPath+suffix before a rewrite. The
// source not existing is not an error; there is simply nothing to protect.
func Backup(manifestPath, suffix string, log *logging.Logger) (string, error) {
	backupPath := manifestPath + suffix

	src, err := os.Open(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return backupPath, nil
		}
		return backupPath, fmt.Errorf("backup %s: %w", manifestPath, err)
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return backupPath, fmt.Errorf("backup %s: %w", manifestPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return backupPath, fmt.Errorf("backup %s: %w", manifestPath, err)
	}
	if err := dst.Close(); err != nil {
		return backupPath, fmt.Errorf("backup %s: %w", manifestPath, err)
	}

	log.Infof("jsonl: created backup %s", backupPath)
	return backupPath, nil
}
