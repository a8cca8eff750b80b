package server

import (
	"errors"
	"net/http"

	"visadesk/pkg/types"
)

type caseSetupForm struct {
	VisaCategory    string `form:"visa_category"`
	PetitionerName  string `form:"petitioner_name"`
	BeneficiaryName string `form:"beneficiary_name"`

	types.ScenarioFlags
}

func (s *Service) handleGetOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.internalServerError(w)
		return
	}

	data := &types.OnboardingPageData{
		BasePageData: types.BasePageData{Title: "Set Up Your Case"},
		Categories:   types.VisaCategories,
	}

	// Editing an existing case pre-fills the form.
	cfg, err := s.caseRepo.CaseByUser(ctx, userID)
	if err != nil && !errors.Is(err, types.ErrCaseNotFound) {
		s.logger.WithError(err).Error("failed to load case for onboarding")
		s.internalServerError(w)
		return
	}
	data.Case = cfg

	if err := s.renderTemplate(w, r, "page.onboarding", data); err != nil {
		s.logger.WithError(err).Error("failed to render onboarding page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.internalServerError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Error("failed to parse onboarding form")
		s.internalServerError(w)
		return
	}

	var setup = new(caseSetupForm)
	if err := decoder.Decode(setup, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode onboarding form")
		s.internalServerError(w)
		return
	}

	category, ok := parseVisaCategory(setup.VisaCategory)
	if !ok {
		data := &types.OnboardingPageData{
			BasePageData: types.BasePageData{Title: "Set Up Your Case"},
			Categories:   types.VisaCategories,
			Error:        "Select a visa category.",
		}
		if err := s.renderTemplate(w, r, "page.onboarding", data); err != nil {
			s.logger.WithError(err).Error("failed to render onboarding page with error")
			s.internalServerError(w)
		}
		return
	}

	cfg, err := s.caseRepo.CaseByUser(ctx, userID)
	switch {
	case errors.Is(err, types.ErrCaseNotFound):
		cfg = &types.CaseConfig{UserID: userID}
	case err != nil:
		s.logger.WithError(err).Error("failed to load case during onboarding")
		s.internalServerError(w)
		return
	}

	cfg.VisaCategory = category
	cfg.PetitionerName = setup.PetitionerName
	cfg.BeneficiaryName = setup.BeneficiaryName
	cfg.ScenarioFlags = setup.ScenarioFlags

	if cfg.ID == "" {
		err = s.caseRepo.CreateCase(ctx, cfg)
	} else {
		err = s.caseRepo.UpdateCase(ctx, cfg)
	}
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to save case config")
		s.internalServerError(w)
		return
	}

	s.redirectChecklistWithNotice(w, r, "Case saved.")
}

func parseVisaCategory(v string) (types.VisaCategory, bool) {
	for _, cat := range types.VisaCategories {
		if string(cat) == v {
			return cat, true
		}
	}
	return "", false
}
