package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"stokvel-backend/internal/domain"
)

const maxProofSize = 10 << 20 // 10 MiB

// handleUploadProof stores a proof-of-payment file and returns the opaque
// reference callers attach to a contribution or payout.
func (s *Server) handleUploadProof(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		writeError(w, domain.NewValidation("invalid multipart body"))
		return
	}
	file, header, err := r.FormFile("proof")
	if err != nil {
		writeError(w, domain.NewValidation("missing proof file"))
		return
	}
	defer file.Close()

	ref, err := s.proofs.Save(header.Filename, file)
	if err != nil {
		writeError(w, domain.WrapPersistence(err, "failed to store proof"))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"proof_ref": ref})
}

func (s *Server) handleDownloadProof(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]
	file, err := s.proofs.Open(ref)
	if err != nil {
		writeError(w, domain.NewNotFound("proof not found"))
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, file); err != nil {
		// response already started; nothing useful to send
		return
	}
}
