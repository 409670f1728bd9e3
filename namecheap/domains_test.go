package namecheap

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDomains(t *testing.T) {
	// Arrange
	var form url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.check">
    <DomainCheckResult Domain="example.com" Available="false" IsPremiumName="false" />
    <DomainCheckResult Domain="rare.dev" Available="true" IsPremiumName="true" PremiumRegistrationPrice="2100.00" />
  </CommandResponse>
</ApiResponse>`))
	})

	// Act
	results, err := client.CheckDomains(context.Background(), []string{"example.com", "rare.dev"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "namecheap.domains.check", form.Get("Command"))
	assert.Equal(t, "example.com,rare.dev", form.Get("DomainList"))

	require.Len(t, results, 2)
	assert.Equal(t, "example.com", results[0].Domain)
	assert.False(t, results[0].Available)
	assert.True(t, results[1].Available)
	assert.True(t, results[1].IsPremiumName)
	assert.Equal(t, "2100", results[1].PremiumRegistrationPrice.String())
}

func TestCheckDomains_Validation(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid requests must not reach the API")
	})

	// Act & Assert
	_, err := client.CheckDomains(context.Background(), nil)
	assert.Error(t, err)

	domains := make([]string, maxDomainsPerCheck+1)
	for i := range domains {
		domains[i] = fmt.Sprintf("example%d.com", i)
	}
	_, err = client.CheckDomains(context.Background(), domains)
	assert.Error(t, err)
}

func TestGetDomainList(t *testing.T) {
	// Arrange
	var form url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.getList">
    <DomainGetListResult>
      <Domain ID="127" Name="example.com" User="apiuser" Created="02/15/2023" Expires="02/15/2027" IsExpired="false" IsLocked="false" AutoRenew="true" WhoisGuard="ENABLED" />
    </DomainGetListResult>
    <Paging>
      <TotalItems>57</TotalItems>
      <CurrentPage>2</CurrentPage>
      <PageSize>20</PageSize>
    </Paging>
  </CommandResponse>
</ApiResponse>`))
	})

	// Act
	list, err := client.GetDomainList(context.Background(), DomainListOptions{Page: 2})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2", form.Get("Page"))
	assert.Equal(t, "20", form.Get("PageSize"), "page size defaults to 20")
	assert.Equal(t, "NAME", form.Get("SortBy"), "sort defaults to NAME")
	assert.Equal(t, "ALL", form.Get("ListType"), "list type defaults to ALL")

	assert.Equal(t, 57, list.TotalItems)
	assert.Equal(t, 2, list.CurrentPage)
	require.Len(t, list.Domains, 1)
	assert.Equal(t, "example.com", list.Domains[0].Name)
	assert.True(t, list.Domains[0].AutoRenew)
}

func TestGetDomainList_Validation(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid requests must not reach the API")
	})

	tests := []struct {
		name string
		opts DomainListOptions
	}{
		{name: "page size too large", opts: DomainListOptions{PageSize: 101}},
		{name: "unknown sort option", opts: DomainListOptions{SortBy: "PRICE"}},
		{name: "unknown list type", opts: DomainListOptions{ListType: "PENDING"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.GetDomainList(context.Background(), tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestGetDomainInfo(t *testing.T) {
	// Arrange
	var form url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.getInfo">
    <DomainGetInfoResult Status="Ok" ID="127" DomainName="example.com" OwnerName="apiuser" IsOwner="true" IsPremium="false">
      <DomainDetails>
        <CreatedDate>02/15/2023</CreatedDate>
        <ExpiredDate>02/15/2027</ExpiredDate>
      </DomainDetails>
      <Whoisguard Enabled="True" />
      <DnsDetails ProviderType="CUSTOM" IsUsingOurDNS="false">
        <Nameserver>dns1.example.net</Nameserver>
        <Nameserver>dns2.example.net</Nameserver>
      </DnsDetails>
    </DomainGetInfoResult>
  </CommandResponse>
</ApiResponse>`))
	})

	// Act
	info, err := client.GetDomainInfo(context.Background(), "example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "example", form.Get("DomainName"))
	assert.Equal(t, "com", form.Get("TLD"))

	assert.Equal(t, "example.com", info.DomainName)
	assert.Equal(t, "Ok", info.Status)
	assert.True(t, info.IsOwner)
	assert.True(t, info.WhoisGuard)
	assert.False(t, info.IsUsingOurDNS)
	assert.Equal(t, "02/15/2023", info.CreatedDate)
	assert.Equal(t, "02/15/2027", info.ExpiredDate)
	assert.Equal(t, []string{"dns1.example.net", "dns2.example.net"}, info.Nameservers)
}

func TestGetTldList(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.getTldList">
    <Tlds>
      <Tld Name="com">US Commercial</Tld>
      <Tld Name="net">US Network</Tld>
      <Tld Name="co.uk">United Kingdom</Tld>
    </Tlds>
  </CommandResponse>
</ApiResponse>`))
	})

	// Act
	tlds, err := client.GetTldList(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"com", "net", "co.uk"}, tlds)
}

func TestCreateDomain(t *testing.T) {
	// Arrange
	var form url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.create">
    <DomainCreateResult Domain="example.dev" Registered="true" ChargedAmount="12.16" DomainID="9007" OrderID="196074" TransactionID="380716" WhoisguardEnable="true" NonRealTimeDomain="false" />
  </CommandResponse>
</ApiResponse>`))
	})

	registrant := Contact{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Address1:     "1 Analytical Way",
		City:         "London",
		PostalCode:   "N1 9GU",
		Country:      "GB",
		Phone:        "+44.2071234567",
		EmailAddress: "ada@example.dev",
	}

	// Act
	result, err := client.CreateDomain(context.Background(), DomainCreateRequest{
		DomainName:        "example.dev",
		Registrant:        registrant,
		AddFreeWhoisguard: true,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "example.dev", form.Get("DomainName"))
	assert.Equal(t, "1", form.Get("Years"), "years defaults to 1")
	assert.Equal(t, "yes", form.Get("AddFreeWhoisguard"))
	assert.Equal(t, "yes", form.Get("WGEnabled"))

	// The registrant contact is copied into every contact role.
	for _, role := range []string{"Registrant", "Tech", "Admin", "AuxBilling"} {
		assert.Equal(t, "Ada", form.Get(role+"FirstName"), role)
		assert.Equal(t, "ada@example.dev", form.Get(role+"EmailAddress"), role)
	}

	assert.Equal(t, "example.dev", result.Domain)
	assert.True(t, result.Registered)
	assert.Equal(t, "196074", result.OrderID)
	assert.Equal(t, "380716", result.TransactionID)
	assert.Equal(t, "12.16", result.ChargedAmount.String())
}

func TestCreateDomain_MissingName(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid requests must not reach the API")
	})

	// Act
	_, err := client.CreateDomain(context.Background(), DomainCreateRequest{})

	// Assert
	assert.Error(t, err)
}

func TestRenewDomain(t *testing.T) {
	// Arrange
	var form url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.renew">
    <DomainRenewResult DomainName="example.com" DomainID="9007" Renew="true" OrderID="196099" TransactionID="380750" ChargedAmount="14.16">
      <DomainDetails>
        <ExpiredDate>02/15/2029</ExpiredDate>
      </DomainDetails>
    </DomainRenewResult>
  </CommandResponse>
</ApiResponse>`))
	})

	// Act
	result, err := client.RenewDomain(context.Background(), "example.com", 2, "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2", form.Get("Years"))
	assert.True(t, result.Renewed)
	assert.Equal(t, "02/15/2029", result.ExpiredDate)
	assert.Equal(t, "14.16", result.ChargedAmount.String())
}
