package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	er "github.com/jeffmcadams/namecheap-go/internal/errors"
	"github.com/jeffmcadams/namecheap-go/internal/tracing"
	"github.com/jeffmcadams/namecheap-go/internal/utils"
	"github.com/jeffmcadams/namecheap-go/namecheap"
	"github.com/jeffmcadams/namecheap-go/services"
)

type UpdateNameserversRequest struct {
	Nameservers []string `json:"nameservers"`
}

type DeleteDNSRecordRequest struct {
	Name       string `json:"name"`
	RecordType string `json:"recordType"`
	Value      string `json:"value"`
}

type DNSHandler struct {
	svc *services.Services
}

func NewDNSHandler(s *services.Services) *DNSHandler {
	return &DNSHandler{svc: s}
}

// ListDNSRecords returns the host records of a tenant-owned domain.
func (h *DNSHandler) ListDNSRecords() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DNSHandler.ListDNSRecords")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		tenant := utils.GetTenantFromContext(ctx)
		domain := c.Param("domain")

		records, err := h.svc.RegistrarService.ListDNSRecords(ctx, tenant, domain)
		if errors.Is(err, er.ErrDomainNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": er.ErrDomainNotFound.Error()})
			return
		} else if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, records)
	}
}

// UpsertDNSRecord adds or replaces one host record on a tenant-owned domain.
func (h *DNSHandler) UpsertDNSRecord() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DNSHandler.UpsertDNSRecord")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		tenant := utils.GetTenantFromContext(ctx)
		domain := c.Param("domain")

		var record namecheap.HostRecord
		if err := c.ShouldBindJSON(&record); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if record.Name == "" || record.RecordType == "" || record.Address == "" {
			message := "Missing required fields: name, type, address"
			tracing.TraceErr(span, errors.New(message))
			c.JSON(http.StatusBadRequest, gin.H{"error": message})
			return
		}

		err := h.svc.RegistrarService.UpsertDNSRecord(ctx, tenant, domain, record)
		if errors.Is(err, er.ErrDomainNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": er.ErrDomainNotFound.Error()})
			return
		} else if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": "record saved"})
	}
}

// DeleteDNSRecord removes one host record from a tenant-owned domain.
func (h *DNSHandler) DeleteDNSRecord() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DNSHandler.DeleteDNSRecord")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		tenant := utils.GetTenantFromContext(ctx)
		domain := c.Param("domain")

		var req DeleteDNSRecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Name == "" || req.RecordType == "" {
			message := "Missing required fields: name, recordType"
			tracing.TraceErr(span, errors.New(message))
			c.JSON(http.StatusBadRequest, gin.H{"error": message})
			return
		}

		err := h.svc.RegistrarService.DeleteDNSRecord(ctx, tenant, domain, req.Name, req.RecordType, req.Value)
		if errors.Is(err, er.ErrDomainNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": er.ErrDomainNotFound.Error()})
			return
		} else if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "record deleted"})
	}
}

// UpdateNameservers replaces the nameservers of a tenant-owned domain.
func (h *DNSHandler) UpdateNameservers() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DNSHandler.UpdateNameservers")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		tenant := utils.GetTenantFromContext(ctx)
		domain := c.Param("domain")

		var req UpdateNameserversRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := h.svc.RegistrarService.UpdateNameservers(ctx, tenant, domain, req.Nameservers)
		if errors.Is(err, er.ErrDomainNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": er.ErrDomainNotFound.Error()})
			return
		} else if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "nameservers updated"})
	}
}
