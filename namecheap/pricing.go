package namecheap

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// PricingRequest holds the queryable inputs of users.getPricing.
// https://www.namecheap.com/support/api/methods/users/get-pricing/
type PricingRequest struct {
	ProductType     string   // required: DOMAIN, SSLCERTIFICATE, WHOISGUARD
	ProductCategory string   // REGISTER, RENEW, REACTIVATE, TRANSFER, WHOISGUARD
	PromotionCode   string
	ActionName      string
	ProductName     []string // e.g. ["com", "net"], joined on the wire
}

const maxPricingFieldLen = 20

func (r PricingRequest) validate() error {
	if r.ProductType == "" {
		return errors.New("ProductType is required")
	}
	for name, value := range map[string]string{
		"ProductType":     r.ProductType,
		"ProductCategory": r.ProductCategory,
		"PromotionCode":   r.PromotionCode,
		"ActionName":      r.ActionName,
	} {
		if len(value) > maxPricingFieldLen {
			return errors.Errorf("%s exceeds %d characters", name, maxPricingFieldLen)
		}
	}
	for _, name := range r.ProductName {
		if len(name) > maxPricingFieldLen {
			return errors.Errorf("ProductName %q exceeds %d characters", name, maxPricingFieldLen)
		}
	}
	return nil
}

// PriceEntry is one priced offering for one duration. CouponPrice is nil when
// the response carried an empty CouponPrice attribute, i.e. no coupon applied.
type PriceEntry struct {
	Duration     int
	DurationType string
	Price        decimal.Decimal
	RegularPrice decimal.Decimal
	YourPrice    decimal.Decimal
	CouponPrice  *decimal.Decimal
	Currency     string
}

// PricingProduct is a named offering (e.g. a TLD) and its price list in
// document order.
type PricingProduct struct {
	Name   string
	Prices []PriceEntry
}

// PricingCategory groups products by action (REGISTER, RENEW, REACTIVATE...).
type PricingCategory struct {
	Name     string
	Products []PricingProduct
}

// ProductTypeResult is a top-level grouping (DOMAIN, SSLCERTIFICATE...).
type ProductTypeResult struct {
	Name       string
	Categories []PricingCategory
}

// PricingResult is the decoded users.getPricing response. Ordering follows
// the response document at every level.
type PricingResult struct {
	ProductTypes []ProductTypeResult

	Server            string
	GMTTimeDifference string
	ExecutionTime     float64
}

type userGetPricingResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	CommandResponse struct {
		Result struct {
			ProductTypes []struct {
				Name       string `xml:"Name,attr"`
				Categories []struct {
					Name     string `xml:"Name,attr"`
					Products []struct {
						Name   string `xml:"Name,attr"`
						Prices []struct {
							Duration     string `xml:"Duration,attr"`
							DurationType string `xml:"DurationType,attr"`
							Price        string `xml:"Price,attr"`
							RegularPrice string `xml:"RegularPrice,attr"`
							YourPrice    string `xml:"YourPrice,attr"`
							CouponPrice  string `xml:"CouponPrice,attr"`
							Currency     string `xml:"Currency,attr"`
						} `xml:"Price"`
					} `xml:"Product"`
				} `xml:"ProductCategory"`
			} `xml:"ProductType"`
		} `xml:"UserGetPricingResult"`
	} `xml:"CommandResponse"`
}

// DecodePricing transforms one users.getPricing response document into a
// PricingResult. It is a pure function of its input: no I/O, no retries, no
// caching. ERROR responses surface as ApiErrors, shape violations as
// ErrMalformedResponse, never as partial results.
func DecodePricing(body []byte) (*PricingResult, error) {
	env, err := parseEnvelope(body)
	if err != nil {
		return nil, err
	}

	var raw userGetPricingResponse
	if err := decodeCommand(body, &raw); err != nil {
		return nil, err
	}

	result := &PricingResult{
		Server:            env.Server,
		GMTTimeDifference: env.GMTTimeDifference,
	}
	if env.ExecutionTime != "" {
		result.ExecutionTime, err = strconv.ParseFloat(strings.TrimSpace(env.ExecutionTime), 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedResponse, "unparseable ExecutionTime %q", env.ExecutionTime)
		}
	}

	for _, rawType := range raw.CommandResponse.Result.ProductTypes {
		productType := ProductTypeResult{Name: rawType.Name}
		for _, rawCategory := range rawType.Categories {
			category := PricingCategory{Name: rawCategory.Name}
			for _, rawProduct := range rawCategory.Products {
				product := PricingProduct{Name: rawProduct.Name}
				for _, rawPrice := range rawProduct.Prices {
					entry, err := decodePriceEntry(
						rawPrice.Duration,
						rawPrice.DurationType,
						rawPrice.Price,
						rawPrice.RegularPrice,
						rawPrice.YourPrice,
						rawPrice.CouponPrice,
						rawPrice.Currency,
					)
					if err != nil {
						return nil, err
					}
					product.Prices = append(product.Prices, entry)
				}
				category.Products = append(category.Products, product)
			}
			productType.Categories = append(productType.Categories, category)
		}
		result.ProductTypes = append(result.ProductTypes, productType)
	}

	return result, nil
}

func decodePriceEntry(duration, durationType, price, regularPrice, yourPrice, couponPrice, currency string) (PriceEntry, error) {
	entry := PriceEntry{
		DurationType: durationType,
		Currency:     currency,
	}

	d, err := strconv.Atoi(strings.TrimSpace(duration))
	if err != nil || d <= 0 {
		return PriceEntry{}, errors.Wrapf(ErrMalformedResponse, "invalid price Duration %q", duration)
	}
	entry.Duration = d

	if price == "" {
		return PriceEntry{}, errors.Wrap(ErrMalformedResponse, "price element missing Price attribute")
	}
	if entry.Price, err = decimal.NewFromString(price); err != nil {
		return PriceEntry{}, errors.Wrapf(ErrMalformedResponse, "unparseable Price %q", price)
	}
	if entry.RegularPrice, err = parsePriceAttr(regularPrice, entry.Price); err != nil {
		return PriceEntry{}, errors.Wrapf(ErrMalformedResponse, "unparseable RegularPrice %q", regularPrice)
	}
	if entry.YourPrice, err = parsePriceAttr(yourPrice, entry.Price); err != nil {
		return PriceEntry{}, errors.Wrapf(ErrMalformedResponse, "unparseable YourPrice %q", yourPrice)
	}

	// An empty CouponPrice means no coupon, which is distinct from a real
	// zero price.
	if couponPrice != "" {
		coupon, err := decimal.NewFromString(couponPrice)
		if err != nil {
			return PriceEntry{}, errors.Wrapf(ErrMalformedResponse, "unparseable CouponPrice %q", couponPrice)
		}
		entry.CouponPrice = &coupon
	}

	return entry, nil
}

// parsePriceAttr parses an optional price attribute, falling back to the
// mandatory Price value when the attribute is absent.
func parsePriceAttr(value string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if value == "" {
		return fallback, nil
	}
	return decimal.NewFromString(value)
}

// Price looks up the price list for a (productType, category, product) path,
// matching names case-insensitively the way the vendor's own responses vary.
func (r *PricingResult) Price(productType, category, product string) ([]PriceEntry, bool) {
	for _, pt := range r.ProductTypes {
		if !strings.EqualFold(pt.Name, productType) {
			continue
		}
		for _, c := range pt.Categories {
			if !strings.EqualFold(c.Name, category) {
				continue
			}
			for _, p := range c.Products {
				if strings.EqualFold(p.Name, product) {
					return p.Prices, true
				}
			}
		}
	}
	return nil, false
}
