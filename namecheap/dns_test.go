package namecheap

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getHostsResponse = `<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.dns.getHosts">
    <DomainDNSGetHostsResult Domain="example.com" IsUsingOurDNS="true" EmailType="MX">
      <host HostId="12" Name="@" Type="A" Address="198.51.100.7" MXPref="10" TTL="1800" IsActive="true" />
      <host HostId="14" Name="www" Type="CNAME" Address="example.com." MXPref="10" TTL="3600" IsActive="true" />
      <host HostId="16" Name="@" Type="MX" Address="mail.example.com" MXPref="20" TTL="1800" IsActive="true" />
    </DomainDNSGetHostsResult>
  </CommandResponse>
</ApiResponse>`

const setHostsOkResponse = `<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.dns.setHosts">
    <DomainDNSSetHostsResult Domain="example.com" IsSuccess="true" />
  </CommandResponse>
</ApiResponse>`

func TestGetHosts(t *testing.T) {
	// Arrange
	var form url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte(getHostsResponse))
	})

	// Act
	records, err := client.GetHosts(context.Background(), "example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "namecheap.domains.dns.getHosts", form.Get("Command"))
	assert.Equal(t, "example", form.Get("SLD"))
	assert.Equal(t, "com", form.Get("TLD"))

	assert.Equal(t, "example.com", records.Domain)
	assert.True(t, records.IsUsingOurDNS)
	require.Len(t, records.Hosts, 3)
	assert.Equal(t, HostRecord{
		HostID:     "12",
		Name:       "@",
		RecordType: "A",
		Address:    "198.51.100.7",
		MXPref:     10,
		TTL:        1800,
		IsActive:   true,
	}, records.Hosts[0])
	assert.Equal(t, 3600, records.Hosts[1].TTL)
	assert.Equal(t, 20, records.Hosts[2].MXPref)
}

func TestGetHosts_EmptyZone(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.dns.getHosts">
    <DomainDNSGetHostsResult Domain="example.com" IsUsingOurDNS="true" />
  </CommandResponse>
</ApiResponse>`))
	})

	// Act
	records, err := client.GetHosts(context.Background(), "example.com")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, records.Hosts)
	assert.Empty(t, records.Hosts)
}

func TestSetHosts_IndexedParams(t *testing.T) {
	// Arrange
	var form url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte(setHostsOkResponse))
	})

	hosts := []HostRecord{
		{Name: "@", RecordType: "A", Address: "198.51.100.7", TTL: 300},
		{Name: "@", RecordType: "MX", Address: "mail.example.com"},
		{Name: "www", RecordType: "CNAME", Address: "example.com."},
	}

	// Act
	err := client.SetHosts(context.Background(), "example.com", hosts)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "namecheap.domains.dns.setHosts", form.Get("Command"))

	assert.Equal(t, "@", form.Get("HostName1"))
	assert.Equal(t, "A", form.Get("RecordType1"))
	assert.Equal(t, "198.51.100.7", form.Get("Address1"))
	assert.Equal(t, "300", form.Get("TTL1"))
	assert.Empty(t, form.Get("MXPref1"), "MXPref only applies to MX records")

	assert.Equal(t, "MX", form.Get("RecordType2"))
	assert.Equal(t, "10", form.Get("MXPref2"), "omitted MXPref gets the default")

	assert.Equal(t, "www", form.Get("HostName3"))
	assert.Equal(t, "1800", form.Get("TTL3"), "omitted TTL gets the default")
	assert.Empty(t, form.Get("HostName4"))
}

func TestSetHosts_Validation(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid records must not reach the API")
	})

	tests := []struct {
		name   string
		record HostRecord
	}{
		{name: "missing name", record: HostRecord{RecordType: "A", Address: "198.51.100.7"}},
		{name: "missing type", record: HostRecord{Name: "@", Address: "198.51.100.7"}},
		{name: "missing address", record: HostRecord{Name: "@", RecordType: "A"}},
		{name: "unknown type", record: HostRecord{Name: "@", RecordType: "SPF", Address: "x"}},
		{name: "ttl too low", record: HostRecord{Name: "@", RecordType: "A", Address: "198.51.100.7", TTL: 30}},
		{name: "ttl too high", record: HostRecord{Name: "@", RecordType: "A", Address: "198.51.100.7", TTL: 90000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			err := client.SetHosts(context.Background(), "example.com", []HostRecord{tt.record})

			// Assert
			assert.Error(t, err)
		})
	}
}

func TestSetHosts_NotAcknowledged(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.dns.setHosts">
    <DomainDNSSetHostsResult Domain="example.com" IsSuccess="false" />
  </CommandResponse>
</ApiResponse>`))
	})

	// Act
	err := client.SetHosts(context.Background(), "example.com", []HostRecord{
		{Name: "@", RecordType: "A", Address: "198.51.100.7"},
	})

	// Assert
	assert.Error(t, err)
}

func TestSetCustomNameservers_Validation(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid requests must not reach the API")
	})

	// Act & Assert
	err := client.SetCustomNameservers(context.Background(), "example.com", nil)
	assert.Error(t, err)

	many := make([]string, maxCustomNameservers+1)
	for i := range many {
		many[i] = "ns1.example.net"
	}
	err = client.SetCustomNameservers(context.Background(), "example.com", many)
	assert.Error(t, err)
}

func TestUpsertRecord_ReplacesMatchingRecord(t *testing.T) {
	// Arrange
	var setForm url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch r.PostForm.Get("Command") {
		case "namecheap.domains.dns.getHosts":
			w.Write([]byte(getHostsResponse))
		case "namecheap.domains.dns.setHosts":
			setForm = r.PostForm
			w.Write([]byte(setHostsOkResponse))
		default:
			t.Errorf("unexpected command %q", r.PostForm.Get("Command"))
		}
	})

	// Act
	err := client.UpsertRecord(context.Background(), "example.com", HostRecord{
		Name:       "@",
		RecordType: "A",
		Address:    "203.0.113.99",
		TTL:        300,
	})

	// Assert
	require.NoError(t, err)
	// The matching A record is replaced in place, the rest of the zone survives.
	assert.Equal(t, "203.0.113.99", setForm.Get("Address1"))
	assert.Equal(t, "300", setForm.Get("TTL1"))
	assert.Equal(t, "www", setForm.Get("HostName2"))
	assert.Equal(t, "MX", setForm.Get("RecordType3"))
	assert.Empty(t, setForm.Get("HostName4"))
}

func TestUpsertRecord_AppendsNewRecord(t *testing.T) {
	// Arrange
	var setForm url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("Command") == "namecheap.domains.dns.getHosts" {
			w.Write([]byte(getHostsResponse))
			return
		}
		setForm = r.PostForm
		w.Write([]byte(setHostsOkResponse))
	})

	// Act
	err := client.UpsertRecord(context.Background(), "example.com", HostRecord{
		Name:       "api",
		RecordType: "CNAME",
		Address:    "example.com.",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "api", setForm.Get("HostName4"))
	assert.Equal(t, "CNAME", setForm.Get("RecordType4"))
}

func TestDeleteRecord(t *testing.T) {
	// Arrange
	var setForm url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("Command") == "namecheap.domains.dns.getHosts" {
			w.Write([]byte(getHostsResponse))
			return
		}
		setForm = r.PostForm
		w.Write([]byte(setHostsOkResponse))
	})

	// Act
	err := client.DeleteRecord(context.Background(), "example.com", "www", "CNAME", "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "@", setForm.Get("HostName1"))
	assert.Equal(t, "A", setForm.Get("RecordType1"))
	assert.Equal(t, "MX", setForm.Get("RecordType2"))
	assert.Empty(t, setForm.Get("HostName3"))
}

func TestDeleteRecord_ValueMismatchKeepsRecord(t *testing.T) {
	// Arrange
	var setForm url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("Command") == "namecheap.domains.dns.getHosts" {
			w.Write([]byte(getHostsResponse))
			return
		}
		setForm = r.PostForm
		w.Write([]byte(setHostsOkResponse))
	})

	// Act
	err := client.DeleteRecord(context.Background(), "example.com", "@", "A", "203.0.113.1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "@", setForm.Get("HostName1"))
	assert.Equal(t, "198.51.100.7", setForm.Get("Address1"))
	assert.Equal(t, "www", setForm.Get("HostName2"))
}

func TestSetARecords(t *testing.T) {
	// Arrange
	var setForm url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("Command") == "namecheap.domains.dns.getHosts" {
			w.Write([]byte(getHostsResponse))
			return
		}
		setForm = r.PostForm
		w.Write([]byte(setHostsOkResponse))
	})

	// Act
	err := client.SetARecords(context.Background(), "example.com", "203.0.113.50")

	// Assert
	require.NoError(t, err)
	// Existing apex A record is dropped, CNAME and MX stay, apex and www point
	// at the new address.
	assert.Equal(t, "www", setForm.Get("HostName1"))
	assert.Equal(t, "CNAME", setForm.Get("RecordType1"))
	assert.Equal(t, "MX", setForm.Get("RecordType2"))
	assert.Equal(t, "@", setForm.Get("HostName3"))
	assert.Equal(t, "203.0.113.50", setForm.Get("Address3"))
	assert.Equal(t, "www", setForm.Get("HostName4"))
	assert.Equal(t, "203.0.113.50", setForm.Get("Address4"))
}
