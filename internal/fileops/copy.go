// file: internal/fileops/copy.go
// version: 2.0.0
// guid: 8f7e6d5c-4b3a-2918-7f6e-5d4c3b2a1908

package fileops

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrChecksumMismatch is returned when a copy does not match its source
var ErrChecksumMismatch = errors.New("checksum mismatch")

// DefaultBackupSuffix is appended to the original filename for backups
const DefaultBackupSuffix = ".bak"

// OperationConfig configures copy behavior
type OperationConfig struct {
	// VerifyChecksums enables SHA256 verification after a copy
	VerifyChecksums bool
}

// DefaultConfig returns the default copy configuration
func DefaultConfig() OperationConfig {
	return OperationConfig{
		VerifyChecksums: true,
	}
}

// BackupPath returns the sibling path used for a backup of path
func BackupPath(path, suffix string) string {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	return path + suffix
}

// Backup copies path to its backup sibling and returns the backup path.
// An existing backup is overwritten.
func Backup(path, suffix string, config OperationConfig) (string, error) {
	dst := BackupPath(path, suffix)
	if err := CopyFile(path, dst, config); err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", path, err)
	}
	return dst, nil
}

// CopyFile copies src to dst, syncs it to disk and keeps the source mode.
// With VerifyChecksums the two files are hashed and compared afterwards.
func CopyFile(src, dst string, config OperationConfig) error {
	if err := copyFile(src, dst); err != nil {
		return err
	}
	if !config.VerifyChecksums {
		return nil
	}

	srcHash, err := ComputeFileHash(src)
	if err != nil {
		return fmt.Errorf("failed to hash source: %w", err)
	}
	dstHash, err := ComputeFileHash(dst)
	if err != nil {
		return fmt.Errorf("failed to hash copy: %w", err)
	}
	if srcHash != dstHash {
		_ = os.Remove(dst)
		return fmt.Errorf("%w: %s", ErrChecksumMismatch, dst)
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	sourceInfo, err := sourceFile.Stat()
	if err != nil {
		return err
	}
	if !sourceInfo.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, sourceInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	// Sync to ensure data is written to disk
	if err := destFile.Sync(); err != nil {
		return err
	}

	return os.Chmod(dst, sourceInfo.Mode().Perm())
}

// ComputeFileHash computes the SHA256 hash of a file
func ComputeFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
