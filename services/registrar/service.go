package registrar

import (
	"strings"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/net/context"

	"github.com/jeffmcadams/namecheap-go/interfaces"
	"github.com/jeffmcadams/namecheap-go/internal/config"
	er "github.com/jeffmcadams/namecheap-go/internal/errors"
	"github.com/jeffmcadams/namecheap-go/internal/repository"
	"github.com/jeffmcadams/namecheap-go/internal/tracing"
	"github.com/jeffmcadams/namecheap-go/internal/utils"
	"github.com/jeffmcadams/namecheap-go/namecheap"
)

type registrarService struct {
	cfg      *config.NamecheapConfig
	client   *namecheap.Client
	postgres *repository.Repositories
}

func NewRegistrarService(cfg *config.NamecheapConfig, client *namecheap.Client, postgres *repository.Repositories) interfaces.RegistrarService {
	return &registrarService{
		cfg:      cfg,
		client:   client,
		postgres: postgres,
	}
}

// CheckDomainAvailability checks if the domain can be registered and whether
// it is a premium name.
func (s *registrarService) CheckDomainAvailability(ctx context.Context, domain string) (bool, bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RegistrarService.CheckDomainAvailability")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("domain", domain)

	results, err := s.client.CheckDomains(ctx, []string{domain})
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "domain availability check failed"))
		return false, false, err
	}
	if len(results) == 0 {
		err := errors.Errorf("no availability result returned for %s", domain)
		tracing.TraceErr(span, err)
		return false, false, err
	}

	result := results[0]
	span.LogFields(
		tracingLog.Bool("result.available", result.Available),
		tracingLog.Bool("result.premium", result.IsPremiumName),
	)
	return result.Available, result.IsPremiumName, nil
}

// GetDomainPrice returns the 1-year registration price for the domain's TLD.
func (s *registrarService) GetDomainPrice(ctx context.Context, domain string) (decimal.Decimal, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RegistrarService.GetDomainPrice")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("domain", domain)

	tld, err := tldOf(domain)
	if err != nil {
		tracing.TraceErr(span, err)
		return decimal.Zero, err
	}

	pricing, err := s.client.GetPricing(ctx, namecheap.PricingRequest{
		ProductType:     "DOMAIN",
		ProductCategory: "REGISTER",
		ProductName:     []string{tld},
	})
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "domain pricing lookup failed"))
		return decimal.Zero, err
	}

	prices, ok := pricing.Price("DOMAIN", "REGISTER", tld)
	if !ok {
		err := errors.Errorf("no pricing returned for TLD %s", tld)
		tracing.TraceErr(span, err)
		return decimal.Zero, err
	}
	for _, price := range prices {
		if price.Duration == 1 && strings.EqualFold(price.DurationType, "YEAR") {
			span.LogKV("result.price", price.YourPrice.String())
			return price.YourPrice, nil
		}
	}

	err = errors.Errorf("no 1-year registration price for TLD %s", tld)
	tracing.TraceErr(span, err)
	return decimal.Zero, err
}

// PurchaseDomain registers the domain with the configured registrant contact
// and stores the purchase in postgres.
func (s *registrarService) PurchaseDomain(ctx context.Context, tenant, domain string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RegistrarService.PurchaseDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagTenant(span, tenant)
	span.LogKV("domain", domain)

	result, err := s.client.CreateDomain(ctx, namecheap.DomainCreateRequest{
		DomainName:        domain,
		Years:             s.cfg.Years,
		AddFreeWhoisguard: true,
		Registrant: namecheap.Contact{
			FirstName:        s.cfg.RegistrantFirstName,
			LastName:         s.cfg.RegistrantLastName,
			JobTitle:         s.cfg.RegistrantJobTitle,
			OrganizationName: s.cfg.RegistrantCompanyName,
			Address1:         s.cfg.RegistrantAddress1,
			City:             s.cfg.RegistrantCity,
			StateProvince:    s.cfg.RegistrantState,
			PostalCode:       s.cfg.RegistrantZIP,
			Country:          s.cfg.RegistrantCountry,
			Phone:            s.cfg.RegistrantPhoneNumber,
			EmailAddress:     s.cfg.RegistrantEmail,
		},
	})
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "domain purchase failed"))
		return err
	}
	if !result.Registered {
		err := errors.Errorf("failed to register domain %s: registrar returned unsuccessful status", domain)
		tracing.TraceErr(span, err)
		return err
	}

	span.LogFields(
		tracingLog.String("result.domain", result.Domain),
		tracingLog.String("result.orderID", result.OrderID),
		tracingLog.String("result.transactionID", result.TransactionID),
		tracingLog.String("result.chargedAmount", result.ChargedAmount.String()),
	)

	_, err = s.postgres.DomainRepository.RegisterDomain(ctx, tenant, domain, repository.PurchaseDetails{
		OrderID:       result.OrderID,
		TransactionID: result.TransactionID,
		ChargedAmount: result.ChargedAmount.String(),
	})
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to store purchased domain in postgres"))
		return err
	}

	return nil
}

func (s *registrarService) GetDomainInfo(ctx context.Context, tenant, domain string) (interfaces.RegistrarDomainInfo, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RegistrarService.GetDomainInfo")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagTenant(span, tenant)
	span.LogKV("domain", domain)

	if err := s.requireOwnership(ctx, tenant, domain); err != nil {
		tracing.TraceErr(span, err)
		return interfaces.RegistrarDomainInfo{}, err
	}

	info, err := s.client.GetDomainInfo(ctx, domain)
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "domain info lookup failed"))
		return interfaces.RegistrarDomainInfo{}, err
	}

	domainInfo := interfaces.RegistrarDomainInfo{
		DomainName:  info.DomainName,
		CreatedDate: info.CreatedDate,
		ExpiredDate: info.ExpiredDate,
		Nameservers: info.Nameservers,
		WhoisGuard:  info.WhoisGuard,
	}
	span.LogKV("domainInfo", domainInfo)
	return domainInfo, nil
}

func (s *registrarService) UpdateNameservers(ctx context.Context, tenant, domain string, nameservers []string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RegistrarService.UpdateNameservers")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagTenant(span, tenant)
	span.LogKV("domain", domain, "nameservers", utils.SliceToString(nameservers))

	if err := s.requireOwnership(ctx, tenant, domain); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	if err := s.client.SetCustomNameservers(ctx, domain, nameservers); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "setting custom nameservers failed"))
		return err
	}
	return nil
}

func (s *registrarService) ListDNSRecords(ctx context.Context, tenant, domain string) (*namecheap.HostRecords, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RegistrarService.ListDNSRecords")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagTenant(span, tenant)
	span.LogKV("domain", domain)

	if err := s.requireOwnership(ctx, tenant, domain); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	records, err := s.client.GetHosts(ctx, domain)
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "listing host records failed"))
		return nil, err
	}
	return records, nil
}

func (s *registrarService) UpsertDNSRecord(ctx context.Context, tenant, domain string, record namecheap.HostRecord) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RegistrarService.UpsertDNSRecord")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagTenant(span, tenant)
	span.LogKV("domain", domain, "record.name", record.Name, "record.type", record.RecordType)

	if err := s.requireOwnership(ctx, tenant, domain); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	if err := s.client.UpsertRecord(ctx, domain, record); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "upserting host record failed"))
		return err
	}
	return nil
}

func (s *registrarService) DeleteDNSRecord(ctx context.Context, tenant, domain, name, recordType, value string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RegistrarService.DeleteDNSRecord")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagTenant(span, tenant)
	span.LogKV("domain", domain, "record.name", name, "record.type", recordType)

	if err := s.requireOwnership(ctx, tenant, domain); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	if err := s.client.DeleteRecord(ctx, domain, name, recordType, value); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "deleting host record failed"))
		return err
	}
	return nil
}

// requireOwnership rejects operations on domains the tenant does not own.
func (s *registrarService) requireOwnership(ctx context.Context, tenant, domain string) error {
	exists, err := s.postgres.DomainRepository.CheckDomainOwnership(ctx, tenant, domain)
	if err != nil {
		return errors.Wrap(err, "failed to check domain ownership in postgres")
	}
	if !exists {
		return errors.Wrapf(er.ErrDomainNotFound, "domain %s does not belong to tenant %s or is not active", domain, tenant)
	}
	return nil
}

func tldOf(domain string) (string, error) {
	parts := strings.SplitN(domain, ".", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.Errorf("invalid domain name %q", domain)
	}
	return parts[1], nil
}
