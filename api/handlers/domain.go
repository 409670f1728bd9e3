package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/jeffmcadams/namecheap-go/internal/config"
	er "github.com/jeffmcadams/namecheap-go/internal/errors"
	"github.com/jeffmcadams/namecheap-go/internal/repository"
	"github.com/jeffmcadams/namecheap-go/internal/tracing"
	"github.com/jeffmcadams/namecheap-go/internal/utils"
	"github.com/jeffmcadams/namecheap-go/services"
)

type RegisterDomainRequest struct {
	Domain string `json:"domain"`
}

type CheckDomainsRequest struct {
	Domains []string `json:"domains"`
}

type DomainResponse struct {
	Domain DomainRecord `json:"domain"`
}

type DomainsResponse struct {
	Domains []DomainRecord `json:"domains"`
}

type DomainRecord struct {
	Domain      string   `json:"domain"`
	Nameservers []string `json:"nameservers"`
	CreatedDate string   `json:"createdDate"`
	ExpiredDate string   `json:"expiredDate"`
}

type DomainAvailabilityResponse struct {
	Domain      string `json:"domain"`
	IsAvailable bool   `json:"isAvailable"`
	IsPremium   bool   `json:"isPremium"`
}

type DomainPriceResponse struct {
	Domain string          `json:"domain"`
	Price  decimal.Decimal `json:"price"`
}

type DomainHandler struct {
	repos *repository.Repositories
	cfg   *config.Config
	svc   *services.Services
}

func NewDomainHandler(r *repository.Repositories, cfg *config.Config, s *services.Services) *DomainHandler {
	return &DomainHandler{
		repos: r,
		cfg:   cfg,
		svc:   s,
	}
}

// RegisterDomain purchases a new domain for the tenant after gating on
// availability, premium status and the configured price cap.
func (h *DomainHandler) RegisterDomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainHandler.RegisterDomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		if err := utils.ValidateTenant(ctx); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		tenant := utils.GetTenantFromContext(ctx)

		var req RegisterDomainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		domain := req.Domain

		if domain == "" {
			message := "Missing required field: domain"
			tracing.TraceErr(span, errors.New(message))
			c.JSON(http.StatusBadRequest, gin.H{"error": message})
			return
		}

		// check if domain tld is supported
		parts := strings.SplitN(domain, ".", 2)
		if len(parts) != 2 || !utils.IsStringInSlice(parts[1], h.cfg.DomainConfig.SupportedTlds) {
			tracing.TraceErr(span, er.ErrTldNotSupported)
			c.JSON(http.StatusNotAcceptable, gin.H{"error": er.ErrTldNotSupported.Error()})
			return
		}

		isAvailable, isPremium, err := h.svc.RegistrarService.CheckDomainAvailability(ctx, domain)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !isAvailable {
			tracing.TraceErr(span, er.ErrDomainNotAvailable)
			c.JSON(http.StatusNotAcceptable, gin.H{"error": er.ErrDomainNotAvailable.Error()})
			return
		}
		if isPremium {
			tracing.TraceErr(span, er.ErrDomainPremium)
			c.JSON(http.StatusNotAcceptable, gin.H{"error": er.ErrDomainPremium.Error()})
			return
		}

		domainPrice, err := h.svc.RegistrarService.GetDomainPrice(ctx, domain)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if domainPrice.GreaterThan(decimal.NewFromFloat(h.cfg.NamecheapConfig.MaxPrice)) {
			tracing.TraceErr(span, er.ErrPriceLimitExceeded)
			c.JSON(http.StatusNotAcceptable, gin.H{"error": er.ErrPriceLimitExceeded.Error()})
			return
		}

		err = h.svc.RegistrarService.PurchaseDomain(ctx, tenant, domain)
		if errors.Is(err, er.ErrConnectionTimeout) {
			message := "Connection timeout, please retry"
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": message})
			return
		} else if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		domainInfo, err := h.svc.RegistrarService.GetDomainInfo(ctx, tenant, domain)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, DomainResponse{Domain: DomainRecord{
			Domain:      domain,
			Nameservers: domainInfo.Nameservers,
			CreatedDate: domainInfo.CreatedDate,
			ExpiredDate: domainInfo.ExpiredDate,
		}})
	}
}

// CheckDomains checks availability for a batch of domains.
func (h *DomainHandler) CheckDomains() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainHandler.CheckDomains")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var req CheckDomainsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(req.Domains) == 0 {
			message := "Missing required field: domains"
			tracing.TraceErr(span, errors.New(message))
			c.JSON(http.StatusBadRequest, gin.H{"error": message})
			return
		}

		responses := make([]DomainAvailabilityResponse, 0, len(req.Domains))
		for _, domain := range req.Domains {
			isAvailable, isPremium, err := h.svc.RegistrarService.CheckDomainAvailability(ctx, domain)
			if err != nil {
				tracing.TraceErr(span, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			responses = append(responses, DomainAvailabilityResponse{
				Domain:      domain,
				IsAvailable: isAvailable,
				IsPremium:   isPremium,
			})
		}

		c.JSON(http.StatusOK, gin.H{"results": responses})
	}
}

// GetDomain returns registrar details for a tenant-owned domain.
func (h *DomainHandler) GetDomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainHandler.GetDomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		tenant := utils.GetTenantFromContext(ctx)
		domain := c.Param("domain")

		domainInfo, err := h.svc.RegistrarService.GetDomainInfo(ctx, tenant, domain)
		if errors.Is(err, er.ErrDomainNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": er.ErrDomainNotFound.Error()})
			return
		} else if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, DomainResponse{Domain: DomainRecord{
			Domain:      domain,
			Nameservers: domainInfo.Nameservers,
			CreatedDate: domainInfo.CreatedDate,
			ExpiredDate: domainInfo.ExpiredDate,
		}})
	}
}

// ListDomains lists the tenant's active domains from postgres.
func (h *DomainHandler) ListDomains() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainHandler.ListDomains")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		tenant := utils.GetTenantFromContext(ctx)

		domains, err := h.repos.DomainRepository.GetActiveDomains(ctx, tenant)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		records := make([]DomainRecord, 0, len(domains))
		for _, d := range domains {
			records = append(records, DomainRecord{Domain: d.Domain})
		}
		c.JSON(http.StatusOK, DomainsResponse{Domains: records})
	}
}

// GetDomainPrice returns the 1-year registration price for the domain.
func (h *DomainHandler) GetDomainPrice() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainHandler.GetDomainPrice")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		domain := c.Param("domain")

		price, err := h.svc.RegistrarService.GetDomainPrice(ctx, domain)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, DomainPriceResponse{Domain: domain, Price: price})
	}
}
