package namecheap

import (
	"encoding/xml"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/net/context"
)

const maxDomainsPerCheck = 50

// DomainCheckResult is one entry of a domains.check reply.
type DomainCheckResult struct {
	Domain                   string
	Available                bool
	IsPremiumName            bool
	PremiumRegistrationPrice decimal.Decimal
}

type domainsCheckResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Results []struct {
			Domain                   string `xml:"Domain,attr"`
			Available                bool   `xml:"Available,attr"`
			IsPremiumName            bool   `xml:"IsPremiumName,attr"`
			PremiumRegistrationPrice string `xml:"PremiumRegistrationPrice,attr"`
		} `xml:"DomainCheckResult"`
	} `xml:"CommandResponse"`
}

// CheckDomains checks registration availability for up to 50 domains in one
// call. Result order follows the response document.
func (c *Client) CheckDomains(ctx context.Context, domains []string) ([]DomainCheckResult, error) {
	if len(domains) == 0 {
		return nil, errors.New("no domains to check")
	}
	if len(domains) > maxDomainsPerCheck {
		return nil, errors.Errorf("maximum of %d domains can be checked in a single call", maxDomainsPerCheck)
	}

	params := url.Values{}
	params.Add("DomainList", strings.Join(domains, ","))

	body, err := c.do(ctx, "namecheap.domains.check", params)
	if err != nil {
		return nil, err
	}
	if _, err := parseEnvelope(body); err != nil {
		return nil, err
	}

	var raw domainsCheckResponse
	if err := decodeCommand(body, &raw); err != nil {
		return nil, err
	}

	results := make([]DomainCheckResult, 0, len(raw.CommandResponse.Results))
	for _, r := range raw.CommandResponse.Results {
		result := DomainCheckResult{
			Domain:        r.Domain,
			Available:     r.Available,
			IsPremiumName: r.IsPremiumName,
		}
		if r.PremiumRegistrationPrice != "" {
			result.PremiumRegistrationPrice, err = decimal.NewFromString(r.PremiumRegistrationPrice)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedResponse, "unparseable PremiumRegistrationPrice %q", r.PremiumRegistrationPrice)
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// DomainListOptions narrows a domains.getList call.
type DomainListOptions struct {
	Page       int
	PageSize   int
	SortBy     string // NAME, NAME_DESC, EXPIREDATE, EXPIREDATE_DESC, CREATEDATE, CREATEDATE_DESC
	ListType   string // ALL, EXPIRING, EXPIRED
	SearchTerm string
}

var (
	validSortOptions = []string{"NAME", "NAME_DESC", "EXPIREDATE", "EXPIREDATE_DESC", "CREATEDATE", "CREATEDATE_DESC"}
	validListTypes   = []string{"ALL", "EXPIRING", "EXPIRED"}
)

// DomainListEntry is one domain row of a domains.getList reply.
type DomainListEntry struct {
	ID         string
	Name       string
	User       string
	Created    string
	Expires    string
	IsExpired  bool
	IsLocked   bool
	AutoRenew  bool
	WhoisGuard string
}

// DomainList is a page of the account's domains plus paging totals.
type DomainList struct {
	Domains     []DomainListEntry
	TotalItems  int
	CurrentPage int
	PageSize    int
}

type domainsGetListResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Domains []struct {
			ID         string `xml:"ID,attr"`
			Name       string `xml:"Name,attr"`
			User       string `xml:"User,attr"`
			Created    string `xml:"Created,attr"`
			Expires    string `xml:"Expires,attr"`
			IsExpired  bool   `xml:"IsExpired,attr"`
			IsLocked   bool   `xml:"IsLocked,attr"`
			AutoRenew  bool   `xml:"AutoRenew,attr"`
			WhoisGuard string `xml:"WhoisGuard,attr"`
		} `xml:"DomainGetListResult>Domain"`
		Paging struct {
			TotalItems  int `xml:"TotalItems"`
			CurrentPage int `xml:"CurrentPage"`
			PageSize    int `xml:"PageSize"`
		} `xml:"Paging"`
	} `xml:"CommandResponse"`
}

func (c *Client) GetDomainList(ctx context.Context, opts DomainListOptions) (*DomainList, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.PageSize > 100 {
		return nil, errors.New("maximum page size is 100")
	}
	if opts.SortBy == "" {
		opts.SortBy = "NAME"
	}
	if !containsFold(validSortOptions, opts.SortBy) {
		return nil, errors.Errorf("sort option must be one of %s", strings.Join(validSortOptions, ", "))
	}
	if opts.ListType == "" {
		opts.ListType = "ALL"
	}
	if !containsFold(validListTypes, opts.ListType) {
		return nil, errors.Errorf("list type must be one of %s", strings.Join(validListTypes, ", "))
	}

	params := url.Values{}
	params.Add("Page", strconv.Itoa(opts.Page))
	params.Add("PageSize", strconv.Itoa(opts.PageSize))
	params.Add("SortBy", opts.SortBy)
	params.Add("ListType", opts.ListType)
	if opts.SearchTerm != "" {
		params.Add("SearchTerm", opts.SearchTerm)
	}

	body, err := c.do(ctx, "namecheap.domains.getList", params)
	if err != nil {
		return nil, err
	}
	if _, err := parseEnvelope(body); err != nil {
		return nil, err
	}

	var raw domainsGetListResponse
	if err := decodeCommand(body, &raw); err != nil {
		return nil, err
	}

	list := &DomainList{
		TotalItems:  raw.CommandResponse.Paging.TotalItems,
		CurrentPage: raw.CommandResponse.Paging.CurrentPage,
		PageSize:    raw.CommandResponse.Paging.PageSize,
	}
	for _, d := range raw.CommandResponse.Domains {
		list.Domains = append(list.Domains, DomainListEntry(d))
	}
	return list, nil
}

// DomainInfo is the subset of domains.getInfo this module consumes.
type DomainInfo struct {
	DomainName    string
	Status        string
	IsOwner       bool
	IsPremium     bool
	CreatedDate   string
	ExpiredDate   string
	Nameservers   []string
	WhoisGuard    bool
	IsUsingOurDNS bool
}

type domainsGetInfoResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Result struct {
			Status        string `xml:"Status,attr"`
			DomainName    string `xml:"DomainName,attr"`
			IsOwner       bool   `xml:"IsOwner,attr"`
			IsPremium     bool   `xml:"IsPremium,attr"`
			DomainDetails struct {
				CreatedDate string `xml:"CreatedDate"`
				ExpiredDate string `xml:"ExpiredDate"`
			} `xml:"DomainDetails"`
			WhoisGuard struct {
				Enabled string `xml:"Enabled,attr"`
			} `xml:"Whoisguard"`
			DnsDetails struct {
				IsUsingOurDNS bool     `xml:"IsUsingOurDNS,attr"`
				Nameservers   []string `xml:"Nameserver"`
			} `xml:"DnsDetails"`
		} `xml:"DomainGetInfoResult"`
	} `xml:"CommandResponse"`
}

func (c *Client) GetDomainInfo(ctx context.Context, domain string) (*DomainInfo, error) {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("DomainName", sld)
	params.Add("TLD", tld)

	body, err := c.do(ctx, "namecheap.domains.getInfo", params)
	if err != nil {
		return nil, err
	}
	if _, err := parseEnvelope(body); err != nil {
		return nil, err
	}

	var raw domainsGetInfoResponse
	if err := decodeCommand(body, &raw); err != nil {
		return nil, err
	}

	result := raw.CommandResponse.Result
	return &DomainInfo{
		DomainName:    result.DomainName,
		Status:        result.Status,
		IsOwner:       result.IsOwner,
		IsPremium:     result.IsPremium,
		CreatedDate:   result.DomainDetails.CreatedDate,
		ExpiredDate:   result.DomainDetails.ExpiredDate,
		Nameservers:   result.DnsDetails.Nameservers,
		WhoisGuard:    strings.EqualFold(result.WhoisGuard.Enabled, "True"),
		IsUsingOurDNS: result.DnsDetails.IsUsingOurDNS,
	}, nil
}

type domainsGetTldListResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Tlds []struct {
			Name string `xml:"Name,attr"`
		} `xml:"Tlds>Tld"`
	} `xml:"CommandResponse"`
}

// GetTldList returns the TLDs available for registration.
func (c *Client) GetTldList(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, "namecheap.domains.getTldList", nil)
	if err != nil {
		return nil, err
	}
	if _, err := parseEnvelope(body); err != nil {
		return nil, err
	}

	var raw domainsGetTldListResponse
	if err := decodeCommand(body, &raw); err != nil {
		return nil, err
	}

	tlds := make([]string, 0, len(raw.CommandResponse.Tlds))
	for _, tld := range raw.CommandResponse.Tlds {
		tlds = append(tlds, tld.Name)
	}
	return tlds, nil
}

// Contact is one registrant-style contact block of domains.create.
type Contact struct {
	FirstName        string
	LastName         string
	JobTitle         string
	OrganizationName string
	Address1         string
	City             string
	StateProvince    string
	PostalCode       string
	Country          string
	Phone            string
	EmailAddress     string
}

func (ct Contact) addParams(params url.Values, role string) {
	params.Add(role+"FirstName", ct.FirstName)
	params.Add(role+"LastName", ct.LastName)
	params.Add(role+"JobTitle", ct.JobTitle)
	params.Add(role+"OrganizationName", ct.OrganizationName)
	params.Add(role+"Address1", ct.Address1)
	params.Add(role+"City", ct.City)
	params.Add(role+"StateProvince", ct.StateProvince)
	params.Add(role+"PostalCode", ct.PostalCode)
	params.Add(role+"Country", ct.Country)
	params.Add(role+"Phone", ct.Phone)
	params.Add(role+"EmailAddress", ct.EmailAddress)
}

// DomainCreateRequest registers a new domain. The registrant contact is
// reused for the tech, admin and aux-billing roles, which is how the vendor's
// own examples fill the form.
type DomainCreateRequest struct {
	DomainName        string
	Years             int
	Registrant        Contact
	AddFreeWhoisguard bool
	PromotionCode     string
	Nameservers       []string
}

// DomainCreateResult is the outcome of domains.create.
type DomainCreateResult struct {
	Domain        string
	Registered    bool
	OrderID       string
	TransactionID string
	ChargedAmount decimal.Decimal
}

type domainsCreateResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Result struct {
			Domain        string `xml:"Domain,attr"`
			Registered    bool   `xml:"Registered,attr"`
			OrderID       string `xml:"OrderID,attr"`
			TransactionID string `xml:"TransactionID,attr"`
			ChargedAmount string `xml:"ChargedAmount,attr"`
		} `xml:"DomainCreateResult"`
	} `xml:"CommandResponse"`
}

func (c *Client) CreateDomain(ctx context.Context, req DomainCreateRequest) (*DomainCreateResult, error) {
	if req.DomainName == "" {
		return nil, errors.New("domain name is required")
	}
	if req.Years <= 0 {
		req.Years = 1
	}

	params := url.Values{}
	params.Add("DomainName", req.DomainName)
	params.Add("Years", strconv.Itoa(req.Years))
	if req.AddFreeWhoisguard {
		params.Add("AddFreeWhoisguard", "yes")
		params.Add("WGEnabled", "yes")
	}
	if req.PromotionCode != "" {
		params.Add("PromotionCode", req.PromotionCode)
	}
	if len(req.Nameservers) > 0 {
		params.Add("Nameservers", strings.Join(req.Nameservers, ","))
	}
	for _, role := range []string{"Registrant", "Tech", "Admin", "AuxBilling"} {
		req.Registrant.addParams(params, role)
	}

	body, err := c.do(ctx, "namecheap.domains.create", params)
	if err != nil {
		return nil, err
	}
	if _, err := parseEnvelope(body); err != nil {
		return nil, err
	}

	var raw domainsCreateResponse
	if err := decodeCommand(body, &raw); err != nil {
		return nil, err
	}

	result := &DomainCreateResult{
		Domain:        raw.CommandResponse.Result.Domain,
		Registered:    raw.CommandResponse.Result.Registered,
		OrderID:       raw.CommandResponse.Result.OrderID,
		TransactionID: raw.CommandResponse.Result.TransactionID,
	}
	if charged := raw.CommandResponse.Result.ChargedAmount; charged != "" {
		result.ChargedAmount, err = decimal.NewFromString(charged)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedResponse, "unparseable ChargedAmount %q", charged)
		}
	}
	return result, nil
}

// DomainRenewResult is the outcome of domains.renew.
type DomainRenewResult struct {
	DomainName    string
	Renewed       bool
	OrderID       string
	TransactionID string
	ChargedAmount decimal.Decimal
	ExpiredDate   string
}

type domainsRenewResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Result struct {
			DomainName    string `xml:"DomainName,attr"`
			Renew         bool   `xml:"Renew,attr"`
			OrderID       string `xml:"OrderID,attr"`
			TransactionID string `xml:"TransactionID,attr"`
			ChargedAmount string `xml:"ChargedAmount,attr"`
			DomainDetails struct {
				ExpiredDate string `xml:"ExpiredDate"`
			} `xml:"DomainDetails"`
		} `xml:"DomainRenewResult"`
	} `xml:"CommandResponse"`
}

func (c *Client) RenewDomain(ctx context.Context, domain string, years int, promotionCode string) (*DomainRenewResult, error) {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return nil, err
	}
	if years <= 0 {
		years = 1
	}

	params := url.Values{}
	params.Add("DomainName", sld)
	params.Add("TLD", tld)
	params.Add("Years", strconv.Itoa(years))
	if promotionCode != "" {
		params.Add("PromotionCode", promotionCode)
	}

	body, err := c.do(ctx, "namecheap.domains.renew", params)
	if err != nil {
		return nil, err
	}
	if _, err := parseEnvelope(body); err != nil {
		return nil, err
	}

	var raw domainsRenewResponse
	if err := decodeCommand(body, &raw); err != nil {
		return nil, err
	}

	result := &DomainRenewResult{
		DomainName:    raw.CommandResponse.Result.DomainName,
		Renewed:       raw.CommandResponse.Result.Renew,
		OrderID:       raw.CommandResponse.Result.OrderID,
		TransactionID: raw.CommandResponse.Result.TransactionID,
		ExpiredDate:   raw.CommandResponse.Result.DomainDetails.ExpiredDate,
	}
	if charged := raw.CommandResponse.Result.ChargedAmount; charged != "" {
		result.ChargedAmount, err = decimal.NewFromString(charged)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedResponse, "unparseable ChargedAmount %q", charged)
		}
	}
	return result, nil
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
