package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"gorm.io/gorm"

	"github.com/jeffmcadams/namecheap-go/internal/models"
	"github.com/jeffmcadams/namecheap-go/internal/tracing"
	"github.com/jeffmcadams/namecheap-go/internal/utils"
)

type DomainRepository interface {
	RegisterDomain(ctx context.Context, tenant, domain string, purchase PurchaseDetails) (*models.Domain, error)
	CheckDomainOwnership(ctx context.Context, tenant, domain string) (bool, error)
	GetDomain(ctx context.Context, tenant, domain string) (*models.Domain, error)
	GetActiveDomains(ctx context.Context, tenant string) ([]models.Domain, error)
}

// PurchaseDetails carries the registrar's purchase receipt fields.
type PurchaseDetails struct {
	OrderID       string
	TransactionID string
	ChargedAmount string
}

type domainRepository struct {
	db *gorm.DB
}

func NewDomainRepository(db *gorm.DB) DomainRepository {
	return &domainRepository{
		db: db,
	}
}

func (r *domainRepository) RegisterDomain(ctx context.Context, tenant, domain string, purchase PurchaseDetails) (*models.Domain, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.RegisterDomain")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagTenant(span, tenant)
	span.LogKV("domain", domain)

	now := utils.Now()
	record := models.Domain{
		Tenant:        tenant,
		Domain:        domain,
		CreatedAt:     now,
		UpdatedAt:     now,
		Active:        true,
		OrderID:       purchase.OrderID,
		TransactionID: purchase.TransactionID,
		ChargedAmount: purchase.ChargedAmount,
	}

	err := r.db.WithContext(ctx).Create(&record).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return &record, nil
}

func (r *domainRepository) CheckDomainOwnership(ctx context.Context, tenant, domain string) (bool, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.CheckDomainOwnership")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagTenant(span, tenant)
	span.LogKV("domain", domain)

	var record models.Domain
	err := r.db.WithContext(ctx).
		Where("tenant = ? AND domain = ? AND active = ?", tenant, domain, true).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.LogFields(tracingLog.Bool("response.exists", false))
			return false, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return false, err
	}

	span.LogFields(tracingLog.Bool("response.exists", true))
	return true, nil
}

func (r *domainRepository) GetDomain(ctx context.Context, tenant, domain string) (*models.Domain, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.GetDomain")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagTenant(span, tenant)
	span.LogKV("domain", domain)

	var record models.Domain
	err := r.db.WithContext(ctx).
		Where("tenant = ? AND domain = ?", tenant, domain).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return &record, nil
}

func (r *domainRepository) GetActiveDomains(ctx context.Context, tenant string) ([]models.Domain, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.GetActiveDomains")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagTenant(span, tenant)

	var records []models.Domain
	err := r.db.WithContext(ctx).
		Where("tenant = ? AND active = ?", tenant, true).
		Order("domain asc").
		Find(&records).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return records, nil
}
