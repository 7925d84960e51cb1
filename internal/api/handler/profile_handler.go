package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/connector-api/internal/core/domain"
	"github.com/devconnector/connector-api/internal/core/ports"
	"github.com/devconnector/connector-api/internal/metrics"
)

// ProfileHandler serves /api/profile. Deleting the profile deletes the whole
// account, so it also holds the account service.
type ProfileHandler struct {
	profiles ports.ProfileService
	accounts ports.AccountService
}

func NewProfileHandler(profiles ports.ProfileService, accounts ports.AccountService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, accounts: accounts}
}

// Me handles GET /api/profile/me.
//
// @Summary      Current user's profile
// @Tags         profile
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/profile/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	p, err := h.profiles.Me(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Upsert handles POST /api/profile.
//
// @Summary      Create or update the caller's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/profile [post]
func (h *ProfileHandler) Upsert(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.profiles.Upsert(c.Request().Context(), id, domain.ProfileFields{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Bio:            req.Bio,
		GitHubUsername: req.GitHubUsername,
		Skills:         domain.ParseSkills(req.Skills),
		Social: domain.Social{
			YouTube:   req.YouTube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			LinkedIn:  req.LinkedIn,
			Instagram: req.Instagram,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// List handles GET /api/profile.
//
// @Summary      All profiles
// @Tags         profile
// @Produce      json
// @Success      200  {array}   domain.Profile
// @Router       /api/profile [get]
func (h *ProfileHandler) List(c echo.Context) error {
	profiles, err := h.profiles.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetByUser handles GET /api/profile/user/:user_id.
//
// @Summary      Profile by user id
// @Tags         profile
// @Produce      json
// @Param        user_id  path      string  true  "Owner identity id"
// @Success      200      {object}  domain.Profile
// @Failure      404      {object}  errorResponse
// @Router       /api/profile/user/{user_id} [get]
func (h *ProfileHandler) GetByUser(c echo.Context) error {
	p, err := h.profiles.GetByOwner(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteAccount handles DELETE /api/profile: profile, then user, then content.
//
// @Summary      Delete the caller's profile and account
// @Tags         profile
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /api/profile [delete]
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.accounts.DeleteAccount(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.AccountsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Msg: "User deleted"})
}

// AddExperience handles PUT /api/profile/experience.
//
// @Summary      Add an experience entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      experienceRequest  true  "Experience entry"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/profile/experience [put]
func (h *ProfileHandler) AddExperience(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req experienceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.profiles.AddExperience(c.Request().Context(), id, domain.ExperienceEntry{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From.Time,
		To:          req.To.timePtr(),
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id.
//
// @Summary      Remove an experience entry
// @Tags         profile
// @Produce      json
// @Security     ApiKeyAuth
// @Param        exp_id  path      string  true  "Experience entry id"
// @Success      200     {object}  domain.Profile
// @Failure      404     {object}  errorResponse
// @Router       /api/profile/experience/{exp_id} [delete]
func (h *ProfileHandler) RemoveExperience(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	p, err := h.profiles.RemoveExperience(c.Request().Context(), id, c.Param("exp_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// AddEducation handles PUT /api/profile/education.
//
// @Summary      Add an education entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      educationRequest  true  "Education entry"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/profile/education [put]
func (h *ProfileHandler) AddEducation(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req educationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.profiles.AddEducation(c.Request().Context(), id, domain.EducationEntry{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From.Time,
		To:           req.To.timePtr(),
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
//
// @Summary      Remove an education entry
// @Tags         profile
// @Produce      json
// @Security     ApiKeyAuth
// @Param        edu_id  path      string  true  "Education entry id"
// @Success      200     {object}  domain.Profile
// @Failure      404     {object}  errorResponse
// @Router       /api/profile/education/{edu_id} [delete]
func (h *ProfileHandler) RemoveEducation(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	p, err := h.profiles.RemoveEducation(c.Request().Context(), id, c.Param("edu_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
