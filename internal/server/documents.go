package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"visadesk/internal/catalog"
	"visadesk/internal/engine"
	"visadesk/internal/utils"
	"visadesk/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/sirupsen/logrus"
)

const maxUploadBytes = 25 << 20

func (s *Service) handlePostDocumentUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.internalServerError(w)
		return
	}

	defKey := flow.Param(ctx, "defKey")
	def, ok := catalog.Lookup(defKey)
	if !ok {
		s.redirectChecklistWithError(w, r, "Unknown document type.")
		return
	}

	cfg, err := s.caseRepo.CaseByUser(ctx, userID)
	if errors.Is(err, types.ErrCaseNotFound) {
		http.Redirect(w, r, "/onboarding", http.StatusFound)
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to load case for upload")
		s.internalServerError(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.redirectChecklistWithError(w, r, "Upload is too large or malformed.")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		s.redirectChecklistWithError(w, r, "Choose a file to upload.")
		return
	}
	defer file.Close()

	now := time.Now().UTC()

	doc := &types.CaseDocument{
		CaseID:        cfg.ID,
		UserID:        userID,
		DefinitionKey: def.Key,
		FileName:      header.Filename,
		FileSizeBytes: header.Size,
		MimeType:      header.Header.Get("Content-Type"),
		UploadedAt:    now,
	}

	// Declared expirations are only meaningful for user-set and
	// policy-variable documents; fixed windows come from the definition.
	if raw := r.FormValue("expires_at"); raw != "" && def.ValidityType != types.ValidityFixedDays && def.ValidityType != types.ValidityNone {
		expiresAt, err := time.Parse("2006-01-02", raw)
		if err != nil {
			s.redirectChecklistWithError(w, r, "Expiration date must be formatted YYYY-MM-DD.")
			return
		}
		if v := engine.ValidateExpirationDate(expiresAt, doc.UploadedAt, now); !v.Valid {
			s.redirectChecklistWithError(w, r, fmt.Sprintf("Rejected expiration date: %s.", v.Reason))
			return
		}
		doc.ExpiresAt = utils.TimePtr(expiresAt)
	}

	if raw := r.FormValue("warn_days"); raw != "" {
		var warnDays int
		if _, err := fmt.Sscanf(raw, "%d", &warnDays); err != nil || warnDays < 1 {
			s.redirectChecklistWithError(w, r, "Reminder window must be a positive number of days.")
			return
		}
		doc.WarnDays = utils.IntPtr(warnDays)
	}

	storageKey := fmt.Sprintf("cases/%s/%s/%s-%s", cfg.ID, def.Key, utils.NanoID(), header.Filename)
	location, err := s.objectStore.Upload(ctx, storageKey, file, doc.MimeType)
	if err != nil {
		s.logger.WithError(err).WithField("definition_key", def.Key).Error("failed to upload document object")
		s.internalServerError(w)
		return
	}
	doc.StorageKey = storageKey

	if err := s.documentRepo.CreateDocument(ctx, doc); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"definition_key": def.Key,
			"location":       location,
		}).Error("failed to persist document record")

		// Best effort; the record is the source of truth, not the object.
		if delErr := s.objectStore.Delete(ctx, storageKey); delErr != nil {
			s.logger.WithError(delErr).Warn("failed to remove orphaned object")
		}
		s.internalServerError(w)
		return
	}

	s.redirectChecklistWithNotice(w, r, fmt.Sprintf("Uploaded %s.", def.Name))
}

func (s *Service) handlePostDocumentDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.internalServerError(w)
		return
	}

	documentID := flow.Param(ctx, "documentID")

	doc, err := s.documentRepo.DocumentByID(ctx, documentID)
	if errors.Is(err, types.ErrDocumentNotFound) {
		s.redirectChecklistWithError(w, r, "That document no longer exists.")
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to load document for delete")
		s.internalServerError(w)
		return
	}

	if doc.UserID != userID {
		s.redirectChecklistWithError(w, r, "That document no longer exists.")
		return
	}

	if err := s.objectStore.Delete(ctx, doc.StorageKey); err != nil {
		s.logger.WithError(err).WithField("storage_key", doc.StorageKey).Warn("failed to remove stored object")
	}

	if err := s.documentRepo.DeleteDocument(ctx, doc.ID, userID); err != nil {
		s.logger.WithError(err).WithField("document_id", doc.ID).Error("failed to delete document record")
		s.internalServerError(w)
		return
	}

	s.redirectChecklistWithNotice(w, r, "Document removed.")
}
