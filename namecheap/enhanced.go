package namecheap

import (
	"strings"

	"golang.org/x/net/context"
)

// The helpers below layer single-record semantics over the API's
// replace-the-whole-zone setHosts call: read the zone, rewrite it, push it
// back. They are not atomic; a concurrent zone edit between the read and the
// write is lost, which matches the vendor API's own semantics.

// UpsertRecord adds or replaces the record with the given name and type while
// preserving every other record in the zone.
func (c *Client) UpsertRecord(ctx context.Context, domain string, record HostRecord) error {
	if err := validateHostRecord(record); err != nil {
		return err
	}
	zone, err := c.GetHosts(ctx, domain)
	if err != nil {
		return err
	}

	found := false
	hosts := make([]HostRecord, 0, len(zone.Hosts)+1)
	for _, existing := range zone.Hosts {
		if sameRecordKey(existing, record) {
			hosts = append(hosts, record)
			found = true
			continue
		}
		hosts = append(hosts, existing)
	}
	if !found {
		hosts = append(hosts, record)
	}

	return c.SetHosts(ctx, domain, hosts)
}

// DeleteRecord removes records matching name and type. When value is
// non-empty only records with that address are removed.
func (c *Client) DeleteRecord(ctx context.Context, domain, name, recordType, value string) error {
	zone, err := c.GetHosts(ctx, domain)
	if err != nil {
		return err
	}

	hosts := make([]HostRecord, 0, len(zone.Hosts))
	for _, existing := range zone.Hosts {
		if strings.EqualFold(existing.Name, name) && strings.EqualFold(existing.RecordType, recordType) {
			if value == "" || existing.Address == value {
				continue
			}
		}
		hosts = append(hosts, existing)
	}

	return c.SetHosts(ctx, domain, hosts)
}

// SetARecords points the apex and www A records at one address, leaving the
// rest of the zone untouched.
func (c *Client) SetARecords(ctx context.Context, domain, ipAddress string) error {
	zone, err := c.GetHosts(ctx, domain)
	if err != nil {
		return err
	}

	hosts := make([]HostRecord, 0, len(zone.Hosts)+2)
	for _, existing := range zone.Hosts {
		if existing.RecordType == "A" && (existing.Name == "@" || existing.Name == "www") {
			continue
		}
		hosts = append(hosts, existing)
	}
	hosts = append(hosts,
		HostRecord{Name: "@", RecordType: "A", Address: ipAddress, TTL: defaultTTL},
		HostRecord{Name: "www", RecordType: "A", Address: ipAddress, TTL: defaultTTL},
	)

	return c.SetHosts(ctx, domain, hosts)
}

func sameRecordKey(a, b HostRecord) bool {
	return strings.EqualFold(a.Name, b.Name) && strings.EqualFold(a.RecordType, b.RecordType)
}
