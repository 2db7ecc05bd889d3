package handler

import (
	"provafoco/internal/domain"
	"provafoco/internal/dto"
	"provafoco/internal/middleware"
	"provafoco/internal/service"
	"provafoco/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler serves ads and SEO metadata.
type ContentHandler struct {
	ads       service.AdService
	seo       service.SeoService
	validator *validation.Validator
}

func NewContentHandler(ads service.AdService, seo service.SeoService, v *validation.Validator) *ContentHandler {
	return &ContentHandler{ads: ads, seo: seo, validator: v}
}

// ActiveAds godoc
// @Summary Active ads for a placement
// @Description Ads that are active and inside their display window, highest priority first
// @Tags ads
// @Produce json
// @Param placement query string true "header_banner, sidebar_top, sidebar_middle, sidebar_bottom, between_questions or footer"
// @Success 200 {array} dto.AdResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /ads/active [get]
func (h *ContentHandler) ActiveAds(c *fiber.Ctx) error {
	placement, _ := c.Locals(middleware.PlacementKey).(domain.Placement)
	ads, err := h.ads.Active(c.UserContext(), placement)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAdResponses(ads))
}

// ListAds godoc
// @Summary List every ad
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.AdResponse
// @Router /admin/ads [get]
func (h *ContentHandler) ListAds(c *fiber.Ctx) error {
	ads, err := h.ads.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAdResponses(ads))
}

// CreateAd godoc
// @Summary Create an ad
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.AdRequest true "Ad"
// @Success 201 {object} dto.AdResponse
// @Router /admin/ads [post]
func (h *ContentHandler) CreateAd(c *fiber.Ctx) error {
	var req dto.AdRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	ad := req.ToDomain()
	if err := h.ads.Create(c.UserContext(), ad); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAdResponse(ad))
}

// UpdateAd godoc
// @Summary Update an ad
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Ad ID"
// @Param body body dto.AdRequest true "Ad"
// @Success 200 {object} dto.AdResponse
// @Router /admin/ads/{id} [put]
func (h *ContentHandler) UpdateAd(c *fiber.Ctx) error {
	var req dto.AdRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	ad := req.ToDomain()
	if err := h.ads.Update(c.UserContext(), c.Params("id"), ad); err != nil {
		return err
	}
	return c.JSON(dto.NewAdResponse(ad))
}

// DeleteAd godoc
// @Summary Deactivate an ad
// @Tags admin
// @Security ApiKeyAuth
// @Param id path string true "Ad ID"
// @Success 204
// @Router /admin/ads/{id} [delete]
func (h *ContentHandler) DeleteAd(c *fiber.Ctx) error {
	if err := h.ads.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSeo godoc
// @Summary SEO metadata for a page
// @Tags seo
// @Produce json
// @Param path query string true "Page path, e.g. /questions"
// @Success 200 {object} dto.SeoResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /seo [get]
func (h *ContentHandler) GetSeo(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("path")}
	}
	meta, err := h.seo.GetByPath(c.UserContext(), path)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSeoResponse(meta))
}

// ListSeo godoc
// @Summary List SEO metadata
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.SeoResponse
// @Router /admin/seo [get]
func (h *ContentHandler) ListSeo(c *fiber.Ctx) error {
	list, err := h.seo.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSeoResponses(list))
}

// UpsertSeo godoc
// @Summary Create or replace SEO metadata for a path
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.SeoRequest true "SEO metadata"
// @Success 200 {object} dto.SeoResponse
// @Router /admin/seo [put]
func (h *ContentHandler) UpsertSeo(c *fiber.Ctx) error {
	var req dto.SeoRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	meta := req.ToDomain()
	if err := h.seo.Upsert(c.UserContext(), meta); err != nil {
		return err
	}
	return c.JSON(dto.NewSeoResponse(meta))
}
