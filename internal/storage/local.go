package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalProofStorage implements ProofStorage on the local filesystem. The
// reference is the generated file name inside the proofs directory; the
// directory layout is not part of the reference contract.
type LocalProofStorage struct {
	proofsDir string
}

func NewLocalProofStorage(uploadsDir string) (*LocalProofStorage, error) {
	proofsDir := filepath.Join(uploadsDir, "proofs")
	if err := os.MkdirAll(proofsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create proofs directory: %w", err)
	}
	return &LocalProofStorage{proofsDir: proofsDir}, nil
}

func (s *LocalProofStorage) Save(filename string, reader io.Reader) (string, error) {
	ref := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(s.proofsDir, ref)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create proof file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write proof file: %w", err)
	}
	return ref, nil
}

func (s *LocalProofStorage) Open(ref string) (io.ReadCloser, error) {
	path, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *LocalProofStorage) Exists(ref string) (bool, error) {
	path, err := s.resolve(ref)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *LocalProofStorage) Delete(ref string) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// resolve rejects references that would escape the proofs directory.
func (s *LocalProofStorage) resolve(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) {
		return "", fmt.Errorf("invalid proof reference %q", ref)
	}
	return filepath.Join(s.proofsDir, ref), nil
}
