package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"provafoco/internal/domain"
	"provafoco/internal/repository/models"
	"provafoco/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	adColumns  = "id, name, placement, ad_code, priority, is_active, start_date, end_date, created_at, updated_at"
	seoColumns = `id, path, title, description, keywords, og_image, og_title, og_description, canonical_url,
	created_at, updated_at`
)

type sqlxAdRepository struct {
	base
}

func NewSQLXAdRepository(db *sqlx.DB) domain.AdRepository {
	return &sqlxAdRepository{base: newBase(db)}
}

func toDomainAd(m *models.Ad) *domain.Ad {
	return &domain.Ad{
		ID:        m.ID,
		Name:      m.Name,
		Placement: domain.Placement(m.Placement),
		AdCode:    m.AdCode,
		Priority:  m.Priority,
		IsActive:  m.IsActive,
		StartDate: util.NullTimeToPtr(m.StartDate),
		EndDate:   util.NullTimeToPtr(m.EndDate),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toDomainAds(rows []models.Ad) []*domain.Ad {
	out := make([]*domain.Ad, len(rows))
	for i := range rows {
		out[i] = toDomainAd(&rows[i])
	}
	return out
}

// ListActive returns the active ads of a placement, highest priority first. The date
// window is not applied here: SQLite keeps timestamps as text, so the caller checks
// it with Ad.ActiveAt.
func (r *sqlxAdRepository) ListActive(ctx context.Context, placement domain.Placement) ([]*domain.Ad, error) {
	exec := r.exec(ctx)
	var rows []models.Ad
	query := exec.Rebind(`SELECT ` + adColumns + ` FROM ads
		WHERE placement = ? AND is_active = 1
		ORDER BY priority DESC, created_at ASC`)
	if err := exec.SelectContext(ctx, &rows, query, string(placement)); err != nil {
		return nil, storeErr("list active ads", err)
	}
	return toDomainAds(rows), nil
}

func (r *sqlxAdRepository) ListAll(ctx context.Context) ([]*domain.Ad, error) {
	var rows []models.Ad
	if err := r.exec(ctx).SelectContext(ctx, &rows, "SELECT "+adColumns+" FROM ads ORDER BY placement ASC, priority DESC"); err != nil {
		return nil, storeErr("list ads", err)
	}
	return toDomainAds(rows), nil
}

func (r *sqlxAdRepository) GetByID(ctx context.Context, id string) (*domain.Ad, error) {
	exec := r.exec(ctx)
	var row models.Ad
	if err := exec.GetContext(ctx, &row, exec.Rebind("SELECT "+adColumns+" FROM ads WHERE id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get ad by id", err)
	}
	return toDomainAd(&row), nil
}

func (r *sqlxAdRepository) Create(ctx context.Context, ad *domain.Ad) error {
	if ad.ID == "" {
		ad.ID = util.NewULID()
	}
	now := time.Now()
	ad.CreatedAt, ad.UpdatedAt = now, now

	exec := r.exec(ctx)
	query := exec.Rebind(`INSERT INTO ads (id, name, placement, ad_code, priority, is_active, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query, ad.ID, ad.Name, string(ad.Placement), ad.AdCode, ad.Priority, util.BoolToInt(ad.IsActive),
		utcNullTime(ad.StartDate), utcNullTime(ad.EndDate), ad.CreatedAt, ad.UpdatedAt)
	return storeErr("create ad", err)
}

func (r *sqlxAdRepository) Update(ctx context.Context, ad *domain.Ad) error {
	ad.UpdatedAt = time.Now()

	exec := r.exec(ctx)
	query := exec.Rebind(`UPDATE ads SET name = ?, placement = ?, ad_code = ?, priority = ?, is_active = ?, start_date = ?, end_date = ?,
		updated_at = ? WHERE id = ?`)
	result, err := exec.ExecContext(ctx, query, ad.Name, string(ad.Placement), ad.AdCode, ad.Priority, util.BoolToInt(ad.IsActive),
		utcNullTime(ad.StartDate), utcNullTime(ad.EndDate), ad.UpdatedAt, ad.ID)
	if err != nil {
		return storeErr("update ad", err)
	}
	return notFoundIfNone(result, "ad", ad.ID)
}

func (r *sqlxAdRepository) SoftDelete(ctx context.Context, id string) error {
	exec := r.exec(ctx)
	result, err := exec.ExecContext(ctx, exec.Rebind("UPDATE ads SET is_active = 0, updated_at = ? WHERE id = ?"), time.Now(), id)
	if err != nil {
		return storeErr("delete ad", err)
	}
	return notFoundIfNone(result, "ad", id)
}

// utcNullTime stores window bounds in UTC so every row shares one offset.
func utcNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	u := t.UTC()
	return util.TimePtrToNullTime(&u)
}

type sqlxSeoRepository struct {
	base
}

func NewSQLXSeoRepository(db *sqlx.DB) domain.SeoRepository {
	return &sqlxSeoRepository{base: newBase(db)}
}

func toDomainSeo(m *models.SeoMetadata) *domain.SeoMetadata {
	return &domain.SeoMetadata{
		ID:            m.ID,
		Path:          m.Path,
		Title:         m.Title,
		Description:   m.Description.String,
		Keywords:      m.Keywords.String,
		OgImage:       m.OgImage.String,
		OgTitle:       m.OgTitle.String,
		OgDescription: m.OgDescription.String,
		CanonicalURL:  m.CanonicalURL.String,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *sqlxSeoRepository) GetByPath(ctx context.Context, path string) (*domain.SeoMetadata, error) {
	exec := r.exec(ctx)
	var row models.SeoMetadata
	if err := exec.GetContext(ctx, &row, exec.Rebind("SELECT "+seoColumns+" FROM seo_metadata WHERE path = ?"), path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get seo metadata", err)
	}
	return toDomainSeo(&row), nil
}

func (r *sqlxSeoRepository) List(ctx context.Context) ([]*domain.SeoMetadata, error) {
	var rows []models.SeoMetadata
	if err := r.exec(ctx).SelectContext(ctx, &rows, "SELECT "+seoColumns+" FROM seo_metadata ORDER BY path ASC"); err != nil {
		return nil, storeErr("list seo metadata", err)
	}
	out := make([]*domain.SeoMetadata, len(rows))
	for i := range rows {
		out[i] = toDomainSeo(&rows[i])
	}
	return out, nil
}

func (r *sqlxSeoRepository) Create(ctx context.Context, meta *domain.SeoMetadata) error {
	if meta.ID == "" {
		meta.ID = util.NewULID()
	}
	now := time.Now()
	meta.CreatedAt, meta.UpdatedAt = now, now

	exec := r.exec(ctx)
	query := exec.Rebind(`INSERT INTO seo_metadata (id, path, title, description, keywords, og_image, og_title, og_description,
		canonical_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query, meta.ID, meta.Path, meta.Title,
		util.StringToNullString(meta.Description), util.StringToNullString(meta.Keywords), util.StringToNullString(meta.OgImage),
		util.StringToNullString(meta.OgTitle), util.StringToNullString(meta.OgDescription), util.StringToNullString(meta.CanonicalURL),
		meta.CreatedAt, meta.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ValidationErrors{domain.NewDuplicateError("path", meta.Path)}
	}
	return storeErr("create seo metadata", err)
}

// Update is keyed by path.
func (r *sqlxSeoRepository) Update(ctx context.Context, meta *domain.SeoMetadata) error {
	meta.UpdatedAt = time.Now()

	exec := r.exec(ctx)
	query := exec.Rebind(`UPDATE seo_metadata SET title = ?, description = ?, keywords = ?, og_image = ?, og_title = ?,
		og_description = ?, canonical_url = ?, updated_at = ? WHERE path = ?`)
	result, err := exec.ExecContext(ctx, query, meta.Title,
		util.StringToNullString(meta.Description), util.StringToNullString(meta.Keywords), util.StringToNullString(meta.OgImage),
		util.StringToNullString(meta.OgTitle), util.StringToNullString(meta.OgDescription), util.StringToNullString(meta.CanonicalURL),
		meta.UpdatedAt, meta.Path)
	if err != nil {
		return storeErr("update seo metadata", err)
	}
	return notFoundIfNone(result, "seo metadata", meta.Path)
}
