package storage

import "io"

// ProofStorage holds proof-of-payment files. The core only ever handles the
// opaque reference string a Save returns; it never reads file content.
type ProofStorage interface {
	// Save stores the file and returns its opaque reference.
	Save(filename string, reader io.Reader) (string, error)
	// Open returns the stored file for download by the web layer.
	Open(ref string) (io.ReadCloser, error)
	// Exists reports whether a reference resolves to a stored file.
	Exists(ref string) (bool, error)
	// Delete removes a stored file.
	Delete(ref string) error
}
