package server

import (
	"errors"
	"net/http"
	"time"

	"visadesk/internal/catalog"
	"visadesk/internal/engine"
	"visadesk/pkg/types"
)

func (s *Service) handleChecklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.internalServerError(w)
		return
	}

	cfg, err := s.caseRepo.CaseByUser(ctx, userID)
	if errors.Is(err, types.ErrCaseNotFound) {
		http.Redirect(w, r, "/onboarding", http.StatusFound)
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to load case for checklist")
		s.internalServerError(w)
		return
	}

	docs, err := s.documentRepo.DocumentsByCase(ctx, cfg.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load case documents")
		s.internalServerError(w)
		return
	}

	now := time.Now().UTC()

	required := engine.ResolveRequired(catalog.Definitions, cfg, false)
	all := engine.ResolveRequired(catalog.Definitions, cfg, true)
	optional := all[len(required):]

	byDefinition := make(map[string][]*types.CaseDocument, len(docs))
	for _, doc := range docs {
		byDefinition[doc.DefinitionKey] = append(byDefinition[doc.DefinitionKey], doc)
	}

	defsByKey := catalog.ByKey()
	for _, doc := range docs {
		def, ok := defsByKey[doc.DefinitionKey]
		if !ok {
			continue
		}
		doc.Status = engine.Classify(def, *doc, now).Status
	}

	data := &types.ChecklistPageData{
		BasePageData: types.BasePageData{Title: "Document Checklist"},
		Case:         cfg,
		Required:     buildChecklistRows(required, byDefinition, false, now),
		Optional:     buildChecklistRows(optional, byDefinition, true, now),
		Stats:        engine.ComputeStats(required, docs),
		Notice:       r.URL.Query().Get("notice"),
		Error:        r.URL.Query().Get("error"),
	}

	if err := s.renderTemplate(w, r, "page.checklist", data); err != nil {
		s.logger.WithError(err).Error("failed to render checklist page")
		s.internalServerError(w)
		return
	}
}

// buildChecklistRows preserves the resolver's ordering. Linked documents
// arrive newest version first, so the expiry shown is the current upload's.
func buildChecklistRows(defs []types.DocumentDefinition, byDefinition map[string][]*types.CaseDocument, optional bool, now time.Time) []types.ChecklistRow {
	rows := make([]types.ChecklistRow, 0, len(defs))
	for _, def := range defs {
		row := types.ChecklistRow{
			Definition: def,
			Optional:   optional,
			Documents:  byDefinition[def.Key],
		}
		if len(row.Documents) > 0 {
			current := engine.Classify(def, *row.Documents[0], now)
			row.ExpiresAt = current.ExpiresAt
			row.DaysUntilExpiration = current.DaysUntilExpiration
		}
		rows = append(rows, row)
	}
	return rows
}
