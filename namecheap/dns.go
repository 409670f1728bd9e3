package namecheap

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

// HostRecord is one DNS host record of a Namecheap-hosted zone.
type HostRecord struct {
	HostID     string `json:"hostId,omitempty"`
	Name       string `json:"name"`
	RecordType string `json:"type"`
	Address    string `json:"address"`
	MXPref     int    `json:"mxPref,omitempty"`
	TTL        int    `json:"ttl"`
	IsActive   bool   `json:"isActive,omitempty"`
}

// HostRecords is a zone snapshot as returned by domains.dns.getHosts.
type HostRecords struct {
	Domain        string       `json:"domain"`
	IsUsingOurDNS bool         `json:"isUsingOurDns"`
	EmailType     string       `json:"emailType,omitempty"`
	Hosts         []HostRecord `json:"hosts"`
}

const (
	minTTL     = 60
	maxTTL     = 86400
	defaultTTL = 1800

	defaultMXPref = 10

	maxCustomNameservers = 12
)

var validRecordTypes = []string{"A", "AAAA", "CNAME", "MX", "TXT", "URL", "URL301", "FRAME"}

type dnsGetHostsResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Result struct {
			Domain        string `xml:"Domain,attr"`
			IsUsingOurDNS bool   `xml:"IsUsingOurDNS,attr"`
			EmailType     string `xml:"EmailType,attr"`
			Hosts         []struct {
				HostID   string `xml:"HostId,attr"`
				Name     string `xml:"Name,attr"`
				Type     string `xml:"Type,attr"`
				Address  string `xml:"Address,attr"`
				MXPref   string `xml:"MXPref,attr"`
				TTL      string `xml:"TTL,attr"`
				IsActive bool   `xml:"IsActive,attr"`
			} `xml:"host"`
		} `xml:"DomainDNSGetHostsResult"`
	} `xml:"CommandResponse"`
}

// GetHosts lists the DNS host records of a domain. A zone with no records
// yields an empty, non-nil Hosts slice.
func (c *Client) GetHosts(ctx context.Context, domain string) (*HostRecords, error) {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("SLD", sld)
	params.Add("TLD", tld)

	body, err := c.do(ctx, "namecheap.domains.dns.getHosts", params)
	if err != nil {
		return nil, err
	}
	if _, err := parseEnvelope(body); err != nil {
		return nil, err
	}

	var raw dnsGetHostsResponse
	if err := decodeCommand(body, &raw); err != nil {
		return nil, err
	}

	result := raw.CommandResponse.Result
	records := &HostRecords{
		Domain:        result.Domain,
		IsUsingOurDNS: result.IsUsingOurDNS,
		EmailType:     result.EmailType,
		Hosts:         make([]HostRecord, 0, len(result.Hosts)),
	}
	for _, h := range result.Hosts {
		record := HostRecord{
			HostID:     h.HostID,
			Name:       h.Name,
			RecordType: h.Type,
			Address:    h.Address,
			TTL:        defaultTTL,
			IsActive:   h.IsActive,
		}
		if h.TTL != "" {
			record.TTL, err = strconv.Atoi(h.TTL)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedResponse, "unparseable host TTL %q", h.TTL)
			}
		}
		if h.MXPref != "" {
			record.MXPref, err = strconv.Atoi(h.MXPref)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedResponse, "unparseable host MXPref %q", h.MXPref)
			}
		}
		records.Hosts = append(records.Hosts, record)
	}
	return records, nil
}

func validateHostRecord(record HostRecord) error {
	if record.Name == "" {
		return errors.New("host record is missing required field Name")
	}
	if record.RecordType == "" {
		return errors.New("host record is missing required field RecordType")
	}
	if !containsFold(validRecordTypes, record.RecordType) {
		return errors.Errorf("invalid record type %q, must be one of %s", record.RecordType, strings.Join(validRecordTypes, ", "))
	}
	if record.Address == "" {
		return errors.New("host record is missing required field Address")
	}
	if record.TTL != 0 && (record.TTL < minTTL || record.TTL > maxTTL) {
		return errors.Errorf("TTL must be between %d and %d seconds", minTTL, maxTTL)
	}
	return nil
}

type dnsSetHostsResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Result struct {
			Domain    string `xml:"Domain,attr"`
			IsSuccess bool   `xml:"IsSuccess,attr"`
		} `xml:"DomainDNSSetHostsResult"`
	} `xml:"CommandResponse"`
}

// SetHosts replaces the full host record set of a domain. The API has no
// partial update; callers that want one use the read-modify-write helpers.
func (c *Client) SetHosts(ctx context.Context, domain string, hosts []HostRecord) error {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Add("SLD", sld)
	params.Add("TLD", tld)

	for i, host := range hosts {
		if err := validateHostRecord(host); err != nil {
			return err
		}
		n := i + 1
		ttl := host.TTL
		if ttl == 0 {
			ttl = defaultTTL
		}
		params.Add(fmt.Sprintf("HostName%d", n), host.Name)
		params.Add(fmt.Sprintf("RecordType%d", n), host.RecordType)
		params.Add(fmt.Sprintf("Address%d", n), host.Address)
		params.Add(fmt.Sprintf("TTL%d", n), strconv.Itoa(ttl))
		if host.RecordType == "MX" {
			pref := host.MXPref
			if pref == 0 {
				pref = defaultMXPref
			}
			params.Add(fmt.Sprintf("MXPref%d", n), strconv.Itoa(pref))
		}
	}

	body, err := c.do(ctx, "namecheap.domains.dns.setHosts", params)
	if err != nil {
		return err
	}
	if _, err := parseEnvelope(body); err != nil {
		return err
	}

	var raw dnsSetHostsResponse
	if err := decodeCommand(body, &raw); err != nil {
		return err
	}
	if !raw.CommandResponse.Result.IsSuccess {
		return errors.Errorf("setting host records for %s was not acknowledged", domain)
	}
	return nil
}

type dnsSetDefaultResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Result struct {
			Domain  string `xml:"Domain,attr"`
			Updated bool   `xml:"Updated,attr"`
		} `xml:"DomainDNSSetDefaultResult"`
	} `xml:"CommandResponse"`
}

// SetDefaultNameservers points the domain back at Namecheap's nameservers.
func (c *Client) SetDefaultNameservers(ctx context.Context, domain string) error {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Add("SLD", sld)
	params.Add("TLD", tld)

	body, err := c.do(ctx, "namecheap.domains.dns.setDefault", params)
	if err != nil {
		return err
	}
	if _, err := parseEnvelope(body); err != nil {
		return err
	}

	var raw dnsSetDefaultResponse
	if err := decodeCommand(body, &raw); err != nil {
		return err
	}
	if !raw.CommandResponse.Result.Updated {
		return errors.Errorf("setting default nameservers for %s was not acknowledged", domain)
	}
	return nil
}

type dnsSetCustomResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Result struct {
			Domain  string `xml:"Domain,attr"`
			Updated bool   `xml:"Updated,attr"`
		} `xml:"DomainDNSSetCustomResult"`
	} `xml:"CommandResponse"`
}

// SetCustomNameservers delegates the domain to up to 12 custom nameservers.
func (c *Client) SetCustomNameservers(ctx context.Context, domain string, nameservers []string) error {
	if len(nameservers) == 0 {
		return errors.New("at least one nameserver is required")
	}
	if len(nameservers) > maxCustomNameservers {
		return errors.Errorf("maximum of %d nameservers can be set", maxCustomNameservers)
	}
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Add("SLD", sld)
	params.Add("TLD", tld)
	params.Add("Nameservers", strings.Join(nameservers, ","))

	body, err := c.do(ctx, "namecheap.domains.dns.setCustom", params)
	if err != nil {
		return err
	}
	if _, err := parseEnvelope(body); err != nil {
		return err
	}

	var raw dnsSetCustomResponse
	if err := decodeCommand(body, &raw); err != nil {
		return err
	}
	if !raw.CommandResponse.Result.Updated {
		return errors.Errorf("setting custom nameservers for %s was not acknowledged", domain)
	}
	return nil
}
