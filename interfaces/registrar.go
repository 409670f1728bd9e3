package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jeffmcadams/namecheap-go/namecheap"
)

type RegistrarService interface {
	CheckDomainAvailability(ctx context.Context, domain string) (bool, bool, error)
	GetDomainPrice(ctx context.Context, domain string) (decimal.Decimal, error)
	PurchaseDomain(ctx context.Context, tenant, domain string) error
	GetDomainInfo(ctx context.Context, tenant, domain string) (RegistrarDomainInfo, error)
	UpdateNameservers(ctx context.Context, tenant, domain string, nameservers []string) error
	ListDNSRecords(ctx context.Context, tenant, domain string) (*namecheap.HostRecords, error)
	UpsertDNSRecord(ctx context.Context, tenant, domain string, record namecheap.HostRecord) error
	DeleteDNSRecord(ctx context.Context, tenant, domain, name, recordType, value string) error
}

type RegistrarDomainInfo struct {
	DomainName  string   `json:"domainName"`
	CreatedDate string   `json:"createdDate"`
	ExpiredDate string   `json:"expiredDate"`
	Nameservers []string `json:"nameservers"`
	WhoisGuard  bool     `json:"whoisGuard"`
}
