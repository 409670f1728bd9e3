package registrar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffmcadams/namecheap-go/internal/config"
	er "github.com/jeffmcadams/namecheap-go/internal/errors"
	"github.com/jeffmcadams/namecheap-go/internal/models"
	"github.com/jeffmcadams/namecheap-go/internal/repository"
	"github.com/jeffmcadams/namecheap-go/namecheap"
)

type fakeDomainRepository struct {
	ownedDomains map[string][]string // tenant -> domains
	registered   []models.Domain
}

func (f *fakeDomainRepository) RegisterDomain(ctx context.Context, tenant, domain string, purchase repository.PurchaseDetails) (*models.Domain, error) {
	record := models.Domain{
		Tenant:        tenant,
		Domain:        domain,
		Active:        true,
		OrderID:       purchase.OrderID,
		TransactionID: purchase.TransactionID,
		ChargedAmount: purchase.ChargedAmount,
	}
	f.registered = append(f.registered, record)
	if f.ownedDomains == nil {
		f.ownedDomains = map[string][]string{}
	}
	f.ownedDomains[tenant] = append(f.ownedDomains[tenant], domain)
	return &record, nil
}

func (f *fakeDomainRepository) CheckDomainOwnership(ctx context.Context, tenant, domain string) (bool, error) {
	for _, d := range f.ownedDomains[tenant] {
		if d == domain {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDomainRepository) GetDomain(ctx context.Context, tenant, domain string) (*models.Domain, error) {
	for _, r := range f.registered {
		if r.Tenant == tenant && r.Domain == domain {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeDomainRepository) GetActiveDomains(ctx context.Context, tenant string) ([]models.Domain, error) {
	var out []models.Domain
	for _, r := range f.registered {
		if r.Tenant == tenant && r.Active {
			out = append(out, r)
		}
	}
	return out, nil
}

func newTestService(t *testing.T, repo *fakeDomainRepository, handler http.HandlerFunc) *registrarService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := namecheap.NewClient(namecheap.Config{
		ApiUser:  "apiuser",
		ApiKey:   "apikey",
		UserName: "apiuser",
		ClientIp: "203.0.113.10",
	}, namecheap.WithBaseURL(server.URL))
	require.NoError(t, err)

	cfg := &config.NamecheapConfig{
		Years:               1,
		RegistrantFirstName: "Ada",
		RegistrantLastName:  "Lovelace",
		RegistrantAddress1:  "1 Analytical Way",
		RegistrantCity:      "London",
		RegistrantZIP:       "N1 9GU",
		RegistrantCountry:   "GB",
		RegistrantEmail:     "ada@example.dev",
	}

	return &registrarService{
		cfg:      cfg,
		client:   client,
		postgres: &repository.Repositories{DomainRepository: repo},
	}
}

func TestCheckDomainAvailability(t *testing.T) {
	// Arrange
	svc := newTestService(t, &fakeDomainRepository{}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.check">
    <DomainCheckResult Domain="example.dev" Available="true" IsPremiumName="false" />
  </CommandResponse>
</ApiResponse>`))
	})

	// Act
	available, premium, err := svc.CheckDomainAvailability(context.Background(), "example.dev")

	// Assert
	require.NoError(t, err)
	assert.True(t, available)
	assert.False(t, premium)
}

func TestGetDomainPrice(t *testing.T) {
	// Arrange
	svc := newTestService(t, &fakeDomainRepository{}, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "namecheap.users.getPricing", r.PostForm.Get("Command"))
		assert.Equal(t, "dev", r.PostForm.Get("ProductName"))
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.users.getPricing">
    <UserGetPricingResult>
      <ProductType Name="DOMAIN">
        <ProductCategory Name="REGISTER">
          <Product Name="dev">
            <Price Duration="1" DurationType="YEAR" Price="12.98" RegularPrice="14.98" YourPrice="12.98" CouponPrice="" Currency="USD" />
            <Price Duration="2" DurationType="YEAR" Price="14.98" RegularPrice="14.98" YourPrice="14.98" CouponPrice="" Currency="USD" />
          </Product>
        </ProductCategory>
      </ProductType>
    </UserGetPricingResult>
  </CommandResponse>
</ApiResponse>`))
	})

	// Act
	price, err := svc.GetDomainPrice(context.Background(), "example.dev")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "12.98", price.String())
}

func TestGetDomainPrice_NoPriceForTld(t *testing.T) {
	// Arrange
	svc := newTestService(t, &fakeDomainRepository{}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ApiResponse Status="OK"><CommandResponse><UserGetPricingResult /></CommandResponse></ApiResponse>`))
	})

	// Act
	_, err := svc.GetDomainPrice(context.Background(), "example.dev")

	// Assert
	assert.Error(t, err)
}

func TestPurchaseDomain(t *testing.T) {
	// Arrange
	repo := &fakeDomainRepository{}
	var form url.Values
	svc := newTestService(t, repo, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.create">
    <DomainCreateResult Domain="example.dev" Registered="true" ChargedAmount="12.98" OrderID="196074" TransactionID="380716" />
  </CommandResponse>
</ApiResponse>`))
	})

	// Act
	err := svc.PurchaseDomain(context.Background(), "tenant-a", "example.dev")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "namecheap.domains.create", form.Get("Command"))
	assert.Equal(t, "Ada", form.Get("RegistrantFirstName"))

	require.Len(t, repo.registered, 1)
	stored := repo.registered[0]
	assert.Equal(t, "tenant-a", stored.Tenant)
	assert.Equal(t, "example.dev", stored.Domain)
	assert.Equal(t, "196074", stored.OrderID)
	assert.Equal(t, "380716", stored.TransactionID)
	assert.Equal(t, "12.98", stored.ChargedAmount)
}

func TestPurchaseDomain_NotRegistered(t *testing.T) {
	// Arrange
	repo := &fakeDomainRepository{}
	svc := newTestService(t, repo, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.create">
    <DomainCreateResult Domain="example.dev" Registered="false" />
  </CommandResponse>
</ApiResponse>`))
	})

	// Act
	err := svc.PurchaseDomain(context.Background(), "tenant-a", "example.dev")

	// Assert
	assert.Error(t, err)
	assert.Empty(t, repo.registered, "unsuccessful purchases must not be stored")
}

func TestGetDomainInfo_RequiresOwnership(t *testing.T) {
	// Arrange
	svc := newTestService(t, &fakeDomainRepository{}, func(w http.ResponseWriter, r *http.Request) {
		t.Error("ownership check must short-circuit before the API call")
	})

	// Act
	_, err := svc.GetDomainInfo(context.Background(), "tenant-a", "example.dev")

	// Assert
	assert.ErrorIs(t, err, er.ErrDomainNotFound)
}

func TestListDNSRecords_OwnedDomain(t *testing.T) {
	// Arrange
	repo := &fakeDomainRepository{
		ownedDomains: map[string][]string{"tenant-a": {"example.dev"}},
	}
	svc := newTestService(t, repo, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ApiResponse Status="OK">
  <CommandResponse Type="namecheap.domains.dns.getHosts">
    <DomainDNSGetHostsResult Domain="example.dev" IsUsingOurDNS="true">
      <host HostId="1" Name="@" Type="A" Address="198.51.100.7" TTL="1800" IsActive="true" />
    </DomainDNSGetHostsResult>
  </CommandResponse>
</ApiResponse>`))
	})

	// Act
	records, err := svc.ListDNSRecords(context.Background(), "tenant-a", "example.dev")

	// Assert
	require.NoError(t, err)
	require.Len(t, records.Hosts, 1)
	assert.Equal(t, "198.51.100.7", records.Hosts[0].Address)

	// Another tenant does not see the zone.
	_, err = svc.ListDNSRecords(context.Background(), "tenant-b", "example.dev")
	assert.ErrorIs(t, err, er.ErrDomainNotFound)
}

func TestTldOf(t *testing.T) {
	tld, err := tldOf("example.co.uk")
	require.NoError(t, err)
	assert.Equal(t, "co.uk", tld)

	_, err = tldOf("nodot")
	assert.Error(t, err)
}
