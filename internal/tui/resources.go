package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/naveenspark/backoffice/pkg/client"
	"github.com/naveenspark/backoffice/pkg/domain"
)

// numTabs is the number of top-level tabs.
const numTabs = 6

// tabNames label the 1-6 tab bar.
var tabNames = [numTabs]string{"Catalog", "Logistics", "Commerce", "Occasions", "People", "Notify"}

// treeEntry is the tab entry name of the category hierarchy screen.
const treeEntry = "category tree"

// categoriesEntry is the list whose mutations also change the tree.
const categoriesEntry = "categories"

// tabEntries lists the screens of each tab in tab order.
var tabEntries = [numTabs][]string{
	{"products", "brands", categoriesEntry, treeEntry},
	{"regions", "cities", "delivery partners", "delivery records"},
	{"payments", "offers", "withdrawals", "taxes", "packaging types", "companies"},
	{"occasions", "occasion types"},
	{"users"},
	{"notification templates", "notification history"},
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// buildResources describes every list screen against c.
func buildResources(c *client.Client) map[string]*resource {
	all := []*resource{
		productsResource(c),
		brandsResource(c),
		categoriesResource(c),
		regionsResource(c),
		citiesResource(c),
		deliveryPartnersResource(c),
		deliveryRecordsResource(c),
		paymentsResource(c),
		offersResource(c),
		withdrawalsResource(c),
		taxesResource(c),
		packagingTypesResource(c),
		companiesResource(c),
		occasionsResource(c),
		occasionTypesResource(c),
		usersResource(c),
		templatesResource(c),
		historyResource(c),
	}
	out := make(map[string]*resource, len(all))
	for _, r := range all {
		out[r.name] = r
	}
	return out
}

// -- catalog --

func productsResource(c *client.Client) *resource {
	r := &resource{
		name: "products",
		path: c.Products.Path(),
		columns: []column{
			{"name", 28}, {"sku", 12}, {"price", 10}, {"stock", 6}, {"status", 8},
		},
		fields: []formField{
			{key: "name", label: "name", required: true},
			{key: "description", label: "description"},
			{key: "price", label: "price", kind: kindNumber, required: true},
			{key: "salePrice", label: "sale price", kind: kindNumber},
			{key: "stock", label: "stock", kind: kindInt},
			{key: "sku", label: "sku"},
			{key: "brandId", label: "brand id"},
			{key: "categoryId", label: "category id"},
			{key: "images", label: "image urls (comma)"},
			{key: "isActive", label: "active", kind: kindBool},
		},
	}
	crud(r, c.Products, func(p domain.Product) row {
		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0]
		}
		values := formValues{
			"name": p.Name, "description": p.Description, "price": ftoa(p.Price),
			"stock": strconv.Itoa(p.Stock), "sku": p.SKU, "brandId": p.BrandID,
			"categoryId": p.CategoryID, "images": strings.Join(p.Images, ","),
			"isActive": yesNo(p.IsActive),
		}
		if p.SalePrice != nil {
			values["salePrice"] = ftoa(*p.SalePrice)
		}
		return row{
			id:     p.ID,
			cells:  []string{p.Name, p.SKU, formatMoney(p.Price, ""), strconv.Itoa(p.Stock), activeLabel(p.IsActive)},
			image:  image,
			values: values,
		}
	}, func(v formValues) (client.ProductInput, error) {
		price, err := v.float("price")
		if err != nil {
			return client.ProductInput{}, err
		}
		stock, err := v.int("stock")
		if err != nil {
			return client.ProductInput{}, err
		}
		in := client.ProductInput{
			Name: v.str("name"), Description: v.str("description"), Price: price, Stock: stock,
			SKU: v.str("sku"), BrandID: v.str("brandId"), CategoryID: v.str("categoryId"),
			Images: v.list("images"), IsActive: v.bool("isActive"),
		}
		if v.str("salePrice") != "" {
			sale, err := v.float("salePrice")
			if err != nil {
				return client.ProductInput{}, err
			}
			in.SalePrice = &sale
		}
		return in, nil
	})
	r.actions = []rowAction{{
		key:   "t",
		label: "toggle active",
		run: func(ctx context.Context, sel row) (string, error) {
			active := !sel.values.bool("isActive")
			if err := c.SetProductActive(ctx, sel.id, active); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s is now %s", sel.id, activeLabel(active)), nil
		},
	}}
	return r
}

func brandsResource(c *client.Client) *resource {
	r := &resource{
		name:    "brands",
		path:    c.Brands.Path(),
		columns: []column{{"name", 28}, {"status", 8}, {"created", 10}},
		fields: []formField{
			{key: "name", label: "name", required: true},
			{key: "logo", label: "logo url"},
			{key: "isActive", label: "active", kind: kindBool},
		},
	}
	crud(r, c.Brands, func(b domain.Brand) row {
		return row{
			id:     b.ID,
			cells:  []string{b.Name, activeLabel(b.IsActive), formatTime(b.CreatedAt)},
			image:  b.Logo,
			values: formValues{"name": b.Name, "logo": b.Logo, "isActive": yesNo(b.IsActive)},
		}
	}, func(v formValues) (client.BrandInput, error) {
		return client.BrandInput{Name: v.str("name"), Logo: v.str("logo"), IsActive: v.bool("isActive")}, nil
	})
	return r
}

func categoriesResource(c *client.Client) *resource {
	r := &resource{
		name:    categoriesEntry,
		path:    c.Categories.Path(),
		columns: []column{{"name", 24}, {"slug", 18}, {"parent", 12}, {"order", 5}, {"status", 8}},
		fields: []formField{
			{key: "name", label: "name", required: true},
			{key: "parentId", label: "parent id (empty = root)"},
			{key: "slug", label: "slug"},
			{key: "description", label: "description"},
			{key: "image", label: "image url"},
			{key: "sortOrder", label: "sort order", kind: kindInt},
			{key: "isActive", label: "active", kind: kindBool},
		},
	}
	crud(r, c.Categories, func(cat domain.Category) row {
		parent := ""
		if cat.ParentID != nil {
			parent = *cat.ParentID
		}
		return row{
			id:    cat.ID,
			cells: []string{cat.Name, cat.Slug, orDash(parent), strconv.Itoa(cat.SortOrder), activeLabel(cat.IsActive)},
			image: cat.Image,
			values: formValues{
				"name": cat.Name, "parentId": parent, "slug": cat.Slug, "description": cat.Description,
				"image": cat.Image, "sortOrder": strconv.Itoa(cat.SortOrder), "isActive": yesNo(cat.IsActive),
			},
		}
	}, func(v formValues) (client.CategoryInput, error) {
		order, err := v.int("sortOrder")
		if err != nil {
			return client.CategoryInput{}, err
		}
		return client.CategoryInput{
			Name: v.str("name"), ParentID: v.optional("parentId"), Slug: v.str("slug"),
			Description: v.str("description"), Image: v.str("image"), SortOrder: order,
			IsActive: v.bool("isActive"),
		}, nil
	})
	return r
}

// -- logistics --

func regionsResource(c *client.Client) *resource {
	r := &resource{
		name:    "regions",
		path:    c.Regions.Path(),
		columns: []column{{"name", 24}, {"code", 8}, {"status", 8}},
		fields: []formField{
			{key: "name", label: "name", required: true},
			{key: "code", label: "code"},
			{key: "isActive", label: "active", kind: kindBool},
		},
	}
	crud(r, c.Regions, func(reg domain.Region) row {
		return row{
			id:     reg.ID,
			cells:  []string{reg.Name, reg.Code, activeLabel(reg.IsActive)},
			values: formValues{"name": reg.Name, "code": reg.Code, "isActive": yesNo(reg.IsActive)},
		}
	}, func(v formValues) (client.RegionInput, error) {
		return client.RegionInput{Name: v.str("name"), Code: v.str("code"), IsActive: v.bool("isActive")}, nil
	})
	return r
}

func citiesResource(c *client.Client) *resource {
	r := &resource{
		name:    "cities",
		path:    c.Cities.Path(),
		columns: []column{{"name", 20}, {"region", 16}, {"fee", 8}, {"status", 8}},
		fields: []formField{
			{key: "name", label: "name", required: true},
			{key: "regionId", label: "region id", required: true},
			{key: "deliveryFee", label: "delivery fee", kind: kindNumber},
			{key: "isActive", label: "active", kind: kindBool},
		},
	}
	crud(r, c.Cities, func(city domain.City) row {
		region := city.RegionID
		if city.Region != nil {
			region = city.Region.Name
		}
		return row{
			id:    city.ID,
			cells: []string{city.Name, region, formatMoney(city.DeliveryFee, ""), activeLabel(city.IsActive)},
			values: formValues{
				"name": city.Name, "regionId": city.RegionID,
				"deliveryFee": ftoa(city.DeliveryFee), "isActive": yesNo(city.IsActive),
			},
		}
	}, func(v formValues) (client.CityInput, error) {
		fee, err := v.float("deliveryFee")
		if err != nil {
			return client.CityInput{}, err
		}
		return client.CityInput{Name: v.str("name"), RegionID: v.str("regionId"), DeliveryFee: fee, IsActive: v.bool("isActive")}, nil
	})
	return r
}

func deliveryPartnersResource(c *client.Client) *resource {
	r := &resource{
		name:    "delivery partners",
		path:    c.DeliveryPartners.Path(),
		columns: []column{{"name", 20}, {"phone", 14}, {"commission", 10}, {"orders", 6}, {"status", 8}},
		fields: []formField{
			{key: "name", label: "name", required: true},
			{key: "contactName", label: "contact"},
			{key: "phone", label: "phone"},
			{key: "email", label: "email"},
			{key: "cityIds", label: "city ids (comma)"},
			{key: "commission", label: "commission %", kind: kindNumber},
			{key: "trackingUrl", label: "tracking url"},
			{key: "isActive", label: "active", kind: kindBool},
		},
	}
	crud(r, c.DeliveryPartners, func(p domain.DeliveryPartner) row {
		return row{
			id:    p.ID,
			cells: []string{p.Name, p.Phone, ftoa(p.Commission) + "%", strconv.Itoa(p.ActiveOrders), activeLabel(p.IsActive)},
			values: formValues{
				"name": p.Name, "contactName": p.ContactName, "phone": p.Phone, "email": p.Email,
				"cityIds": strings.Join(p.CityIDs, ","), "commission": ftoa(p.Commission),
				"trackingUrl": p.TrackingURL, "isActive": yesNo(p.IsActive),
			},
		}
	}, func(v formValues) (client.DeliveryPartnerInput, error) {
		commission, err := v.float("commission")
		if err != nil {
			return client.DeliveryPartnerInput{}, err
		}
		return client.DeliveryPartnerInput{
			Name: v.str("name"), ContactName: v.str("contactName"), Phone: v.str("phone"),
			Email: v.str("email"), CityIDs: v.list("cityIds"), Commission: commission,
			TrackingURL: v.str("trackingUrl"), IsActive: v.bool("isActive"),
		}, nil
	})
	return r
}

func deliveryRecordsResource(c *client.Client) *resource {
	r := &resource{
		name:    "delivery records",
		path:    c.DeliveryRecords.Path(),
		columns: []column{{"occasion", 12}, {"partner", 16}, {"tracking", 14}, {"status", 10}, {"scheduled", 10}},
		fields: []formField{
			{key: "occasionId", label: "occasion id", required: true},
			{key: "partnerId", label: "partner id", required: true},
			{key: "cityId", label: "city id"},
			{key: "status", label: "status", kind: kindChoice, choices: domain.DeliveryStatuses},
			{key: "trackingNumber", label: "tracking no"},
			{key: "notes", label: "notes"},
		},
	}
	crud(r, c.DeliveryRecords, func(d domain.DeliveryRecord) row {
		partner := d.PartnerID
		if d.Partner != nil {
			partner = d.Partner.Name
		}
		return row{
			id:     d.ID,
			cells:  []string{d.OccasionID, partner, d.TrackingNo, d.Status, formatDate(d.ScheduledAt)},
			status: d.Status,
			values: formValues{
				"occasionId": d.OccasionID, "partnerId": d.PartnerID, "cityId": d.CityID,
				"status": d.Status, "trackingNumber": d.TrackingNo, "notes": d.Notes,
			},
		}
	}, func(v formValues) (client.DeliveryRecordInput, error) {
		return client.DeliveryRecordInput{
			OccasionID: v.str("occasionId"), PartnerID: v.str("partnerId"), CityID: v.str("cityId"),
			Status: v.str("status"), TrackingNo: v.str("trackingNumber"), Notes: v.str("notes"),
		}, nil
	})
	r.actions = []rowAction{{
		key:   "s",
		label: "status",
		form: func(sel row) *formModel {
			f := newFormModel(r.name, "Delivery status "+sel.id, []formField{
				{key: "status", label: "status", kind: kindChoice, choices: domain.DeliveryStatuses},
				{key: "notes", label: "notes"},
			}, formValues{"status": sel.values["status"]}, "status updated", func(ctx context.Context, v formValues) error {
				_, err := c.UpdateDeliveryStatus(ctx, sel.id, v.str("status"), v.str("notes"))
				return err
			})
			return &f
		},
	}}
	return r
}

// -- commerce --

func paymentsResource(c *client.Client) *resource {
	return &resource{
		name:    "payments",
		path:    c.Payments.Path(),
		columns: []column{{"reference", 16}, {"user", 12}, {"amount", 14}, {"method", 10}, {"status", 10}, {"when", 10}},
		load: listLoader(c.Payments, func(p domain.Payment) row {
			return row{
				id:     p.ID,
				cells:  []string{orDash(p.Reference), p.UserID, formatMoney(p.Amount, p.Currency), p.Method, p.Status, formatTime(p.CreatedAt)},
				status: p.Status,
			}
		}),
	}
}

func offersResource(c *client.Client) *resource {
	r := &resource{
		name:    "offers",
		path:    c.Offers.Path(),
		columns: []column{{"code", 14}, {"discount", 10}, {"used", 9}, {"expires", 10}, {"status", 8}},
		fields: []formField{
			{key: "code", label: "code", required: true},
			{key: "description", label: "description"},
			{key: "discountType", label: "discount type", kind: kindChoice, choices: []string{domain.DiscountPercentage, domain.DiscountFixed}},
			{key: "discountValue", label: "discount value", kind: kindNumber, required: true},
			{key: "minOrderAmount", label: "min order", kind: kindNumber},
			{key: "maxUses", label: "max uses", kind: kindInt},
			{key: "isActive", label: "active", kind: kindBool},
		},
	}
	crud(r, c.Offers, func(o domain.Offer) row {
		discount := ftoa(o.DiscountValue)
		if o.DiscountType == domain.DiscountPercentage {
			discount += "%"
		}
		used := strconv.Itoa(o.UsedCount)
		if o.MaxUses > 0 {
			used += "/" + strconv.Itoa(o.MaxUses)
		}
		return row{
			id:    o.ID,
			cells: []string{o.Code, discount, used, formatDate(o.ExpiresAt), activeLabel(o.IsActive)},
			values: formValues{
				"code": o.Code, "description": o.Description, "discountType": o.DiscountType,
				"discountValue": ftoa(o.DiscountValue), "minOrderAmount": ftoa(o.MinOrder),
				"maxUses": strconv.Itoa(o.MaxUses), "isActive": yesNo(o.IsActive),
			},
		}
	}, func(v formValues) (client.OfferInput, error) {
		if !domain.ValidDiscountType(v.str("discountType")) {
			return client.OfferInput{}, fmt.Errorf("unknown discount type %q", v.str("discountType"))
		}
		value, err := v.float("discountValue")
		if err != nil {
			return client.OfferInput{}, err
		}
		if v.str("discountType") == domain.DiscountPercentage && (value <= 0 || value > 100) {
			return client.OfferInput{}, errors.New("percentage discount must be between 0 and 100")
		}
		minOrder, err := v.float("minOrderAmount")
		if err != nil {
			return client.OfferInput{}, err
		}
		maxUses, err := v.int("maxUses")
		if err != nil {
			return client.OfferInput{}, err
		}
		return client.OfferInput{
			Code: strings.ToUpper(v.str("code")), Description: v.str("description"),
			DiscountType: v.str("discountType"), DiscountValue: value, MinOrder: minOrder,
			MaxUses: maxUses, IsActive: v.bool("isActive"),
		}, nil
	})
	return r
}

func withdrawalsResource(c *client.Client) *resource {
	r := &resource{
		name:    "withdrawals",
		path:    c.Withdrawals.Path(),
		columns: []column{{"user", 12}, {"amount", 14}, {"bank", 16}, {"status", 10}, {"requested", 10}},
		load: listLoader(c.Withdrawals, func(w domain.Withdrawal) row {
			return row{
				id:     w.ID,
				cells:  []string{w.UserID, formatMoney(w.Amount, w.Currency), w.BankName, w.Status, formatTime(w.CreatedAt)},
				status: w.Status,
				values: formValues{"status": w.Status},
			}
		}),
	}
	r.actions = []rowAction{
		{
			key:     "a",
			label:   "approve",
			confirm: "approve withdrawal",
			run: func(ctx context.Context, sel row) (string, error) {
				if sel.values["status"] != "" && sel.values["status"] != domain.WithdrawalPending {
					return "", fmt.Errorf("withdrawal is already %s", sel.values["status"])
				}
				if _, err := c.ApproveWithdrawal(ctx, sel.id); err != nil {
					return "", err
				}
				return "approved " + sel.id, nil
			},
		},
		{
			key:   "x",
			label: "reject",
			form: func(sel row) *formModel {
				f := newFormModel(r.name, "Reject withdrawal "+sel.id, []formField{
					{key: "reason", label: "reason", required: true},
				}, nil, "rejected "+sel.id, func(ctx context.Context, v formValues) error {
					_, err := c.RejectWithdrawal(ctx, sel.id, v.str("reason"))
					return err
				})
				return &f
			},
		},
	}
	return r
}

func taxesResource(c *client.Client) *resource {
	r := &resource{
		name:    "taxes",
		path:    c.Taxes.Path(),
		columns: []column{{"name", 20}, {"rate", 8}, {"default", 7}, {"status", 8}},
		fields: []formField{
			{key: "name", label: "name", required: true},
			{key: "rate", label: "rate %", kind: kindNumber, required: true},
			{key: "isDefault", label: "default", kind: kindBool},
			{key: "isActive", label: "active", kind: kindBool},
		},
	}
	crud(r, c.Taxes, func(t domain.Tax) row {
		return row{
			id:    t.ID,
			cells: []string{t.Name, ftoa(t.Rate) + "%", yesNo(t.IsDefault), activeLabel(t.IsActive)},
			values: formValues{
				"name": t.Name, "rate": ftoa(t.Rate), "isDefault": yesNo(t.IsDefault), "isActive": yesNo(t.IsActive),
			},
		}
	}, func(v formValues) (client.TaxInput, error) {
		rate, err := v.float("rate")
		if err != nil {
			return client.TaxInput{}, err
		}
		if rate < 0 || rate > 100 {
			return client.TaxInput{}, errors.New("rate must be between 0 and 100")
		}
		return client.TaxInput{Name: v.str("name"), Rate: rate, IsDefault: v.bool("isDefault"), IsActive: v.bool("isActive")}, nil
	})
	return r
}

func packagingTypesResource(c *client.Client) *resource {
	r := &resource{
		name:    "packaging types",
		path:    c.PackagingTypes.Path(),
		columns: []column{{"name", 24}, {"price", 10}, {"status", 8}},
		fields: []formField{
			{key: "name", label: "name", required: true},
			{key: "description", label: "description"},
			{key: "price", label: "price", kind: kindNumber},
			{key: "image", label: "image url"},
			{key: "isActive", label: "active", kind: kindBool},
		},
	}
	crud(r, c.PackagingTypes, func(p domain.PackagingType) row {
		return row{
			id:    p.ID,
			cells: []string{p.Name, formatMoney(p.Price, ""), activeLabel(p.IsActive)},
			image: p.Image,
			values: formValues{
				"name": p.Name, "description": p.Description, "price": ftoa(p.Price),
				"image": p.Image, "isActive": yesNo(p.IsActive),
			},
		}
	}, func(v formValues) (client.PackagingTypeInput, error) {
		price, err := v.float("price")
		if err != nil {
			return client.PackagingTypeInput{}, err
		}
		return client.PackagingTypeInput{
			Name: v.str("name"), Description: v.str("description"), Price: price,
			Image: v.str("image"), IsActive: v.bool("isActive"),
		}, nil
	})
	return r
}

func companiesResource(c *client.Client) *resource {
	r := &resource{
		name:    "companies",
		path:    c.Companies.Path(),
		columns: []column{{"name", 22}, {"email", 22}, {"tax no", 12}, {"status", 8}},
		fields: []formField{
			{key: "name", label: "name", required: true},
			{key: "email", label: "email"},
			{key: "phone", label: "phone"},
			{key: "taxNumber", label: "tax number"},
			{key: "address", label: "address"},
			{key: "isActive", label: "active", kind: kindBool},
		},
	}
	crud(r, c.Companies, func(co domain.Company) row {
		return row{
			id:    co.ID,
			cells: []string{co.Name, co.Email, co.TaxNumber, activeLabel(co.IsActive)},
			values: formValues{
				"name": co.Name, "email": co.Email, "phone": co.Phone, "taxNumber": co.TaxNumber,
				"address": co.Address, "isActive": yesNo(co.IsActive),
			},
		}
	}, func(v formValues) (client.CompanyInput, error) {
		return client.CompanyInput{
			Name: v.str("name"), Email: v.str("email"), Phone: v.str("phone"),
			TaxNumber: v.str("taxNumber"), Address: v.str("address"), IsActive: v.bool("isActive"),
		}, nil
	})
	return r
}

// -- occasions --

func occasionsResource(c *client.Client) *resource {
	r := &resource{
		name:    "occasions",
		path:    c.Occasions.Path(),
		columns: []column{{"title", 22}, {"type", 12}, {"date", 10}, {"total", 10}, {"status", 10}},
		load: listLoader(c.Occasions, func(o domain.Occasion) row {
			typ := o.TypeID
			if o.Type != nil {
				typ = o.Type.Name
			}
			return row{
				id:     o.ID,
				cells:  []string{o.Title, typ, formatDate(&o.Date), formatMoney(o.Total, ""), o.Status},
				status: o.Status,
				values: formValues{"status": o.Status},
			}
		}),
	}
	r.actions = []rowAction{{
		key:   "s",
		label: "status",
		form: func(sel row) *formModel {
			f := newFormModel(r.name, "Occasion status "+sel.id, []formField{
				{key: "status", label: "status", kind: kindChoice, choices: domain.OccasionStatuses},
			}, formValues{"status": sel.values["status"]}, "status updated", func(ctx context.Context, v formValues) error {
				_, err := c.UpdateOccasionStatus(ctx, sel.id, v.str("status"))
				return err
			})
			return &f
		},
	}}
	return r
}

func occasionTypesResource(c *client.Client) *resource {
	r := &resource{
		name:    "occasion types",
		path:    c.OccasionTypes.Path(),
		columns: []column{{"name", 24}, {"icon", 10}, {"order", 5}, {"status", 8}},
		fields: []formField{
			{key: "name", label: "name", required: true},
			{key: "icon", label: "icon"},
			{key: "sortOrder", label: "sort order", kind: kindInt},
			{key: "isActive", label: "active", kind: kindBool},
		},
	}
	crud(r, c.OccasionTypes, func(t domain.OccasionType) row {
		return row{
			id:    t.ID,
			cells: []string{t.Name, t.Icon, strconv.Itoa(t.SortOrder), activeLabel(t.IsActive)},
			values: formValues{
				"name": t.Name, "icon": t.Icon, "sortOrder": strconv.Itoa(t.SortOrder), "isActive": yesNo(t.IsActive),
			},
		}
	}, func(v formValues) (client.OccasionTypeInput, error) {
		order, err := v.int("sortOrder")
		if err != nil {
			return client.OccasionTypeInput{}, err
		}
		return client.OccasionTypeInput{Name: v.str("name"), Icon: v.str("icon"), SortOrder: order, IsActive: v.bool("isActive")}, nil
	})
	return r
}

// -- people --

func usersResource(c *client.Client) *resource {
	r := &resource{
		name:    "users",
		path:    c.Users.Path(),
		columns: []column{{"name", 20}, {"email", 26}, {"verified", 8}, {"state", 8}, {"joined", 10}},
		load: listLoader(c.Users, func(u domain.User) row {
			state := "ok"
			if u.IsBlocked {
				state = "blocked"
			}
			return row{
				id:     u.ID,
				cells:  []string{u.Name, u.Email, yesNo(u.IsVerified), state, formatTime(u.CreatedAt)},
				values: formValues{"isBlocked": yesNo(u.IsBlocked)},
			}
		}),
	}
	r.actions = []rowAction{{
		key:     "b",
		label:   "block/unblock",
		confirm: "toggle block for user",
		run: func(ctx context.Context, sel row) (string, error) {
			if sel.values.bool("isBlocked") {
				if err := c.UnblockUser(ctx, sel.id); err != nil {
					return "", err
				}
				return "unblocked " + sel.id, nil
			}
			if err := c.BlockUser(ctx, sel.id); err != nil {
				return "", err
			}
			return "blocked " + sel.id, nil
		},
	}}
	return r
}

// -- notifications --

func templatesResource(c *client.Client) *resource {
	r := &resource{
		name:    "notification templates",
		path:    c.NotificationTemplates.Path(),
		columns: []column{{"key", 20}, {"title", 26}, {"channel", 7}, {"status", 8}},
		fields: []formField{
			{key: "key", label: "key", required: true},
			{key: "title", label: "title", required: true},
			{key: "body", label: "body", required: true},
			{key: "channel", label: "channel", kind: kindChoice, choices: domain.NotificationChannels},
			{key: "isActive", label: "active", kind: kindBool},
		},
	}
	crud(r, c.NotificationTemplates, func(t domain.NotificationTemplate) row {
		return row{
			id:    t.ID,
			cells: []string{t.Key, t.Title, t.Channel, activeLabel(t.IsActive)},
			values: formValues{
				"key": t.Key, "title": t.Title, "body": t.Body, "channel": t.Channel, "isActive": yesNo(t.IsActive),
			},
		}
	}, func(v formValues) (client.NotificationTemplateInput, error) {
		if !domain.ValidChannel(v.str("channel")) {
			return client.NotificationTemplateInput{}, fmt.Errorf("unknown channel %q", v.str("channel"))
		}
		return client.NotificationTemplateInput{
			Key: v.str("key"), Title: v.str("title"), Body: v.str("body"),
			Channel: v.str("channel"), IsActive: v.bool("isActive"),
		}, nil
	})
	r.actions = []rowAction{{
		key:   "s",
		label: "send",
		form: func(sel row) *formModel {
			f := newSendForm(c, sel.id, sel.values)
			return &f
		},
	}}
	return r
}

// newSendForm builds the dashboard send form, pre-filled from a template.
func newSendForm(c *client.Client, templateID string, tmpl formValues) formModel {
	fields := []formField{
		{key: "title", label: "title"},
		{key: "body", label: "body"},
		{key: "channel", label: "channel", kind: kindChoice, choices: domain.NotificationChannels},
		{key: "audience", label: "audience", kind: kindChoice, choices: []string{client.AudienceAll, client.AudienceUsers}},
		{key: "userIds", label: "user ids (comma)"},
	}
	initial := formValues{"title": tmpl["title"], "body": tmpl["body"], "channel": tmpl["channel"]}
	return newFormModel("notification templates", "Send "+orDash(tmpl["key"]), fields, initial, "notification sent",
		func(ctx context.Context, v formValues) error {
			in := client.SendNotificationInput{
				TemplateID: templateID,
				Title:      v.str("title"),
				Body:       v.str("body"),
				Channel:    v.str("channel"),
				Audience:   v.str("audience"),
			}
			if in.Audience == client.AudienceUsers {
				in.UserIDs = v.list("userIds")
			}
			_, err := c.SendNotification(ctx, in)
			return err
		})
}

func historyResource(c *client.Client) *resource {
	return &resource{
		name:    "notification history",
		path:    c.NotificationHistory.Path(),
		columns: []column{{"title", 26}, {"channel", 7}, {"audience", 8}, {"sent", 6}, {"failed", 6}, {"when", 10}},
		load: listLoader(c.NotificationHistory, func(n domain.NotificationSend) row {
			return row{
				id: n.ID,
				cells: []string{
					n.Title, n.Channel, n.Audience,
					fmt.Sprintf("%d/%d", n.Delivered, n.Recipients), strconv.Itoa(n.Failed), formatTime(n.SentAt),
				},
			}
		}),
	}
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
