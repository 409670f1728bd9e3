package namecheap

import (
	"encoding/xml"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/context"

	"github.com/pkg/errors"
)

// GetPricing returns product pricing for the account.
//
// Error codes:
//
//	2011170  PromotionCode is invalid
//	2011298  ProductType is invalid
func (c *Client) GetPricing(ctx context.Context, req PricingRequest) (*PricingResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("ProductType", req.ProductType)
	if req.ProductCategory != "" {
		params.Add("ProductCategory", req.ProductCategory)
	}
	if req.PromotionCode != "" {
		params.Add("PromotionCode", req.PromotionCode)
	}
	if req.ActionName != "" {
		params.Add("ActionName", req.ActionName)
	}
	if len(req.ProductName) > 0 {
		params.Add("ProductName", strings.Join(req.ProductName, ","))
	}

	body, err := c.do(ctx, "namecheap.users.getPricing", params)
	if err != nil {
		return nil, err
	}
	return DecodePricing(body)
}

// Balances holds the account funds as reported by users.getBalances.
type Balances struct {
	Currency                  string
	AvailableBalance          decimal.Decimal
	AccountBalance            decimal.Decimal
	EarnedAmount              decimal.Decimal
	WithdrawableAmount        decimal.Decimal
	FundsRequiredForAutoRenew decimal.Decimal
}

type userGetBalancesResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Result struct {
			Currency                  string `xml:"Currency,attr"`
			AvailableBalance          string `xml:"AvailableBalance,attr"`
			AccountBalance            string `xml:"AccountBalance,attr"`
			EarnedAmount              string `xml:"EarnedAmount,attr"`
			WithdrawableAmount        string `xml:"WithdrawableAmount,attr"`
			FundsRequiredForAutoRenew string `xml:"FundsRequiredForAutoRenew,attr"`
		} `xml:"UserGetBalancesResult"`
	} `xml:"CommandResponse"`
}

func (c *Client) GetBalances(ctx context.Context) (*Balances, error) {
	body, err := c.do(ctx, "namecheap.users.getBalances", nil)
	if err != nil {
		return nil, err
	}
	if _, err := parseEnvelope(body); err != nil {
		return nil, err
	}

	var raw userGetBalancesResponse
	if err := decodeCommand(body, &raw); err != nil {
		return nil, err
	}

	result := raw.CommandResponse.Result
	balances := &Balances{Currency: result.Currency}
	for _, field := range []struct {
		value string
		dst   *decimal.Decimal
	}{
		{result.AvailableBalance, &balances.AvailableBalance},
		{result.AccountBalance, &balances.AccountBalance},
		{result.EarnedAmount, &balances.EarnedAmount},
		{result.WithdrawableAmount, &balances.WithdrawableAmount},
		{result.FundsRequiredForAutoRenew, &balances.FundsRequiredForAutoRenew},
	} {
		if field.value == "" {
			continue
		}
		*field.dst, err = decimal.NewFromString(field.value)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedResponse, "unparseable balance amount %q", field.value)
		}
	}
	return balances, nil
}

type userChangePasswordResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Result struct {
			Success bool `xml:"Success,attr"`
		} `xml:"UserChangePasswordResult"`
	} `xml:"CommandResponse"`
}

// ChangePassword changes the account password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	params := url.Values{}
	params.Add("OldPassword", oldPassword)
	params.Add("NewPassword", newPassword)

	body, err := c.do(ctx, "namecheap.users.changePassword", params)
	if err != nil {
		return err
	}
	if _, err := parseEnvelope(body); err != nil {
		return err
	}

	var raw userChangePasswordResponse
	if err := decodeCommand(body, &raw); err != nil {
		return err
	}
	if !raw.CommandResponse.Result.Success {
		return errors.New("password change was not acknowledged")
	}
	return nil
}
